package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/middleware"
	"fintrack/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func authRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	h := &AuthHandler{
		DB:        db,
		JWTSecret: testSecret,
		JWTIssuer: "fintrack-test",
		TokenTTL:  0, // GenerateToken falls back to 24h
		// bcrypt min cost keeps the suite fast
		BcryptCost: 4,
	}
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(testSecret, db))
	protected.GET("/api/profile", h.Profile)
	return r
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	w, env := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":                  "Alice",
		"email":                 "Alice@Example.com",
		"password":              "correct-horse",
		"password_confirmation": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var reg struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice@example.com", reg.Email, "email stored lowercased")

	w, env = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var profileEnv envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profileEnv))
	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(profileEnv.Data, &profile))
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)
}

func TestRegister_Validation(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	testCases := []struct {
		name string
		body gin.H
	}{
		{"bad email", gin.H{"name": "A", "email": "not-an-email", "password": "longenough", "password_confirmation": "longenough"}},
		{"short password", gin.H{"name": "A", "email": "a@b.com", "password": "short", "password_confirmation": "short"}},
		{"confirmation mismatch", gin.H{"name": "A", "email": "a@b.com", "password": "longenough", "password_confirmation": "different-pw"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/register", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	body := gin.H{
		"name":                  "Alice",
		"email":                 "alice@example.com",
		"password":              "correct-horse",
		"password_confirmation": "correct-horse",
	}
	w, _ := doJSON(t, r, http.MethodPost, "/api/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/register", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Message, "email already taken")
}

func TestLogin_WrongPassword(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":                  "Alice",
		"email":                 "alice@example.com",
		"password":              "correct-horse",
		"password_confirmation": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	// unknown account answers the same message as a wrong password
	w, _ = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name":                  "Alice",
		"email":                 "alice@example.com",
		"password":              "correct-horse",
		"password_confirmation": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for i := 0; i < 5; i++ {
		w, _ = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// even the right password is refused while locked
	w, env := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, env.Message, "locked")
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
