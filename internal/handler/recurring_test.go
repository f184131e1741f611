package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func recurringRouter(db *gorm.DB, actor *models.User) *gin.Engine {
	r := gin.New()
	r.Use(actingAs(actor))

	h := NewRecurringExpenseHandler(db, 10)
	r.GET("/api/recurring-expenses", h.List)
	r.POST("/api/recurring-expenses", h.Create)
	r.GET("/api/recurring-expenses/:id", h.Show)
	r.PUT("/api/recurring-expenses/:id", h.Update)
	r.DELETE("/api/recurring-expenses/:id", h.Delete)
	return r
}

func TestRecurringCreate(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)

	r := recurringRouter(db, alice)
	w, env := doJSON(t, r, http.MethodPost, "/api/recurring-expenses", gin.H{
		"name":          "Netflix",
		"amount":        50.00,
		"cycle":         "monthly",
		"next_run_date": "2024-01-15",
		"auto_add":      true,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var created models.RecurringExpense
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, models.CycleMonthly, created.Cycle)
	assert.True(t, created.AutoAdd)
	assert.Equal(t, "2024-01-15", created.NextRunDate.Format("2006-01-02"))
}

func TestRecurringCreate_RejectsBadCycle(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)

	r := recurringRouter(db, alice)
	w, env := doJSON(t, r, http.MethodPost, "/api/recurring-expenses", gin.H{
		"name":          "Netflix",
		"amount":        50.00,
		"cycle":         "biweekly",
		"next_run_date": "2024-01-15",
		"auto_add":      true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Message, "cycle")
}

func TestRecurringList_ScopedToActor(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)

	for _, actor := range []*models.User{alice, bob} {
		w, _ := doJSON(t, recurringRouter(db, actor), http.MethodPost, "/api/recurring-expenses", gin.H{
			"name":          "Rent",
			"amount":        1000,
			"cycle":         "monthly",
			"next_run_date": "2024-02-01",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(t, recurringRouter(db, alice), http.MethodGet, "/api/recurring-expenses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []models.RecurringExpense `json:"items"`
		Total int64                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, alice.ID, page.Items[0].UserID)
}
