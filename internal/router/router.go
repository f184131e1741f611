package router

import (
	"net/http"

	"fintrack/internal/config"
	"fintrack/internal/handler"
	"fintrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	pageSize := cfg.App.PageSize

	// public routes
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/profile", authHandler.Profile)

	categoryHandler := handler.NewCategoryHandler(db, pageSize)
	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories/:id", categoryHandler.Show)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db, pageSize)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions/:id", transactionHandler.Show)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(db, pageSize)
	protected.GET("/budgets", budgetHandler.List)
	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets/:id", budgetHandler.Show)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)

	savingHandler := handler.NewSavingHandler(db, pageSize)
	protected.GET("/savings", savingHandler.List)
	protected.POST("/savings", savingHandler.Create)
	protected.GET("/savings/:id", savingHandler.Show)
	protected.PUT("/savings/:id", savingHandler.Update)
	protected.DELETE("/savings/:id", savingHandler.Delete)

	recurringHandler := handler.NewRecurringExpenseHandler(db, pageSize)
	protected.GET("/recurring-expenses", recurringHandler.List)
	protected.POST("/recurring-expenses", recurringHandler.Create)
	protected.GET("/recurring-expenses/:id", recurringHandler.Show)
	protected.PUT("/recurring-expenses/:id", recurringHandler.Update)
	protected.DELETE("/recurring-expenses/:id", recurringHandler.Delete)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/financial-summary", reportHandler.FinancialSummary)
	protected.GET("/monthly-financial-data", reportHandler.MonthlyFinancialData)
	protected.GET("/reports/daily", reportHandler.Daily)
	protected.GET("/reports/monthly", reportHandler.Monthly)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/dashboard/summary", dashboardHandler.Summary)
	protected.GET("/dashboard/chart", dashboardHandler.Chart)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/transactions/csv", exportHandler.ExportCSV)
	protected.GET("/export/transactions/xlsx", exportHandler.ExportXLSX)

	// admin-only routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	userHandler := handler.NewUserHandler(db, pageSize)
	admin.GET("/users", userHandler.List)

	return r
}
