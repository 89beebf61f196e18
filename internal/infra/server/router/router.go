// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Savings     *controller.SavingsController
	Payment     *controller.PaymentController
	Budget      *controller.BudgetController
	Liability   *controller.LiabilityController
	Report      *controller.ReportController
	Market      *controller.MarketController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	allowedOrigins   string
}

// NewRouter creates a new router instance with all dependencies.
// loginRateLimiter may be nil.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins string,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", r.controllers.Health.Check)
	r.setupAPIRoutes()

	return r.engine
}

// Engine returns the configured engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")
	v1.GET("/health", c.Health.Check)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		if r.loginRateLimiter != nil {
			auth.POST("/login", r.loginRateLimiter.Middleware(), c.Auth.Login)
		} else {
			auth.POST("/login", c.Auth.Login)
		}
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", c.User.GetProfile)
		users.PATCH("/me", c.User.UpdateProfile)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", c.Category.List)
		categories.POST("", c.Category.Create)
		categories.PATCH("/:id", c.Category.Update)
		categories.DELETE("/:id", c.Category.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.POST("", c.Transaction.Create)
		transactions.GET("/:id", c.Transaction.Get)
		transactions.PATCH("/:id", c.Transaction.Update)
		transactions.DELETE("/:id", c.Transaction.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", c.Savings.List)
		goals.POST("", c.Savings.Create)
		goals.GET("/:id", c.Savings.Get)
		goals.PATCH("/:id", c.Savings.Update)
		goals.DELETE("/:id", c.Savings.Delete)
		goals.POST("/:id/deposit", c.Savings.Deposit)
		goals.POST("/:id/withdraw", c.Savings.Withdraw)
	}

	events := protected.Group("/payment-events")
	{
		events.GET("", c.Payment.List)
		events.POST("", c.Payment.Save)
		events.GET("/calendar", c.Payment.Calendar)
		events.DELETE("/:id", c.Payment.Delete)
		events.POST("/:id/confirm", c.Payment.Confirm)
	}

	budgets := protected.Group("/budgets")
	{
		budgets.GET("", c.Budget.List)
		budgets.POST("", c.Budget.Create)
		budgets.PATCH("/:id", c.Budget.Update)
		budgets.DELETE("/:id", c.Budget.Delete)
	}

	liabilities := protected.Group("/liabilities")
	{
		liabilities.GET("", c.Liability.List)
		liabilities.POST("", c.Liability.Create)
		liabilities.GET("/:id", c.Liability.Get)
		liabilities.PATCH("/:id", c.Liability.Update)
		liabilities.DELETE("/:id", c.Liability.Delete)
		liabilities.POST("/:id/pay", c.Liability.Pay)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/monthly", c.Report.Monthly)
		reports.GET("/custom", c.Report.Custom)
		reports.GET("/custom/export", c.Report.Export)
	}

	protected.GET("/dashboard", c.Report.Dashboard)
	protected.GET("/market/rates", c.Market.Rates)
}
