package router

import (
	"time"

	"home-budget/internal/auth"
	"home-budget/internal/config"
	"home-budget/internal/handler"
	"home-budget/internal/middleware"
	"home-budget/internal/repository"
	"home-budget/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)

	tokens := auth.NewTokenIssuer(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpireMinutes)*time.Minute,
	)
	authSvc := auth.NewService(users, tokens)
	aggSvc := service.NewAggregationService(db)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(users, cfg.Security.BcryptCost)
	categoryHandler := handler.NewCategoryHandler(categories)
	expenseHandler := handler.NewExpenseHandler(expenses, categories)
	balanceHandler := handler.NewBalanceHandler(aggSvc)
	exportHandler := handler.NewExportHandler(expenses, categories)
	auditHandler := handler.NewAuditHandler(db)

	api := r.Group("/api")

	// no token required: login and registration
	api.POST("/auth/token", authHandler.Login)
	api.POST("/users", userHandler.Register)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(authSvc),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/users", userHandler.List)
	protected.GET("/users/me", userHandler.Me)
	protected.GET("/users/:id", userHandler.Detail)
	protected.DELETE("/users/:id", userHandler.Delete)

	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/export/csv", exportHandler.CSV)
	protected.GET("/expenses/export/xlsx", exportHandler.XLSX)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	protected.GET("/balance", balanceHandler.Balance)
	protected.GET("/aggregate", balanceHandler.TotalSpending)

	protected.GET("/logs", auditHandler.List)

	return r
}
