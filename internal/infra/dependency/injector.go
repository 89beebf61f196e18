// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/savings-ledger/config"
	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/budget"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/liability"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/market"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/notification"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/payment"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/report"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/savings"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/savings-ledger/internal/infra/db"
	"github.com/finance-tracker/savings-ledger/internal/infra/server/router"
	"github.com/finance-tracker/savings-ledger/internal/integration/adapters"
	"github.com/finance-tracker/savings-ledger/internal/integration/cache"
	"github.com/finance-tracker/savings-ledger/internal/integration/email"
	"github.com/finance-tracker/savings-ledger/internal/integration/email/templates"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/savings-ledger/internal/integration/export"
	marketdata "github.com/finance-tracker/savings-ledger/internal/integration/market"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence"
	"github.com/finance-tracker/savings-ledger/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	Router         *router.Router
	EmailWorker    *email.Worker
	AutoSaveWorker *scheduler.AutoSaveWorker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client) (*Injector, error) {
	gormDB := database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	goalRepo := persistence.NewSavingsGoalRepository(gormDB)
	eventRepo := persistence.NewPaymentEventRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	liabilityRepo := persistence.NewLiabilityRepository(gormDB)
	notificationRepo := persistence.NewNotificationRepository(gormDB)
	transactor := persistence.NewTransactor(gormDB)

	// Services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cache.NewRefreshTokenStore(redisClient))
	rateProvider := marketdata.NewCachedProvider(
		marketdata.NewNBPClient(cfg.Market.NBPBaseURL, cfg.Market.HTTPTimeout),
		redisClient,
		cfg.Market.CacheTTL,
	)
	resolver := category.NewResolver(categoryRepo)
	enqueuer := notification.NewEnqueuer(userRepo, notificationRepo)
	evaluator := budget.NewEvaluator(budgetRepo, transactionRepo)

	// Auth
	loginRateLimiter := middleware.NewRateLimiter(redisClient, "login", cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		auth.NewRefreshTokenUseCase(userRepo, tokenService),
		auth.NewLogoutUserUseCase(tokenService),
		loginRateLimiter,
	)
	userController := controller.NewUserController(
		auth.NewGetProfileUseCase(userRepo),
		auth.NewUpdateProfileUseCase(userRepo),
	)

	// Categories and ledger
	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, transactor),
	)
	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewGetTransactionUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, resolver, transactor),
		transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, resolver, transactor),
		transaction.NewDeleteTransactionUseCase(transactionRepo),
	)

	// Savings goals
	savingsController := controller.NewSavingsController(
		savings.NewListGoalsUseCase(goalRepo),
		savings.NewGetGoalUseCase(goalRepo),
		savings.NewCreateGoalUseCase(goalRepo),
		savings.NewUpdateGoalUseCase(goalRepo, transactor),
		savings.NewDeleteGoalUseCase(goalRepo, transactionRepo, resolver, transactor),
		savings.NewDepositUseCase(goalRepo, transactionRepo, resolver, transactor),
		savings.NewWithdrawUseCase(goalRepo, transactionRepo, resolver, transactor),
	)
	runAutoSave := savings.NewRunAutoSaveUseCase(goalRepo, transactionRepo, resolver, enqueuer, transactor)

	// Payment events
	paymentController := controller.NewPaymentController(
		payment.NewListEventsUseCase(eventRepo),
		payment.NewSaveEventUseCase(eventRepo, transactor),
		payment.NewDeleteEventUseCase(eventRepo),
		payment.NewCalendarUseCase(eventRepo),
		payment.NewConfirmPaymentUseCase(eventRepo, transactionRepo, resolver, enqueuer, transactor),
	)

	// Budgets and liabilities
	budgetController := controller.NewBudgetController(
		budget.NewListBudgetsUseCase(evaluator),
		budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, resolver, transactor),
		budget.NewUpdateBudgetUseCase(budgetRepo),
		budget.NewDeleteBudgetUseCase(budgetRepo),
	)
	liabilityController := controller.NewLiabilityController(
		liability.NewListLiabilitiesUseCase(liabilityRepo),
		liability.NewGetLiabilityUseCase(liabilityRepo),
		liability.NewCreateLiabilityUseCase(liabilityRepo),
		liability.NewUpdateLiabilityUseCase(liabilityRepo),
		liability.NewDeleteLiabilityUseCase(liabilityRepo),
		liability.NewPayInstallmentUseCase(liabilityRepo),
	)

	// Reports
	customReport := report.NewCustomReportUseCase(transactionRepo)
	reportController := controller.NewReportController(
		report.NewMonthlyReportUseCase(transactionRepo),
		customReport,
		report.NewExportReportUseCase(customReport, export.NewXLSXExporter()),
		report.NewDashboardUseCase(transactionRepo, evaluator),
	)

	healthController := controller.NewHealthController(database.Ping, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	r := router.NewRouter(
		router.Controllers{
			Health:      healthController,
			Auth:        authController,
			User:        userController,
			Category:    categoryController,
			Transaction: transactionController,
			Savings:     savingsController,
			Payment:     paymentController,
			Budget:      budgetController,
			Liability:   liabilityController,
			Report:      reportController,
			Market:      controller.NewMarketController(market.NewGetRatesUseCase(rateProvider)),
		},
		loginRateLimiter,
		middleware.NewAuthMiddleware(tokenService),
		cfg.Server.AllowedOrigins,
	)

	// Background workers
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(notificationRepo, emailSender(&cfg.Email), renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})
	autoSaveWorker := scheduler.NewAutoSaveWorker(goalRepo, runAutoSave, scheduler.AutoSaveWorkerConfig{
		Interval:  cfg.Scheduler.AutoSaveInterval,
		BatchSize: cfg.Scheduler.AutoSaveBatchSize,
	})

	return &Injector{
		Config:         cfg,
		Router:         r,
		EmailWorker:    emailWorker,
		AutoSaveWorker: autoSaveWorker,
	}, nil
}

func emailSender(cfg *config.EmailConfig) adapter.EmailSender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.LogSender{}
	}
	return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
}
