// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/application/usecase/page"
	"github.com/finance-tracker/dashboard/internal/application/usecase/record"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
	"github.com/finance-tracker/dashboard/internal/infra/server/router"
	"github.com/finance-tracker/dashboard/internal/integration/adapters"
	"github.com/finance-tracker/dashboard/internal/integration/cache"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/dashboard/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	RecordSource *dashboard.RecordSource
}

// Infrastructure carries the optional backing services. A nil Redis client
// disables the snapshot cache and keeps rate limiting in memory; a nil
// Publisher keeps snapshot invalidation local to this instance.
type Infrastructure struct {
	Redis      *redis.Client
	Publisher  adapter.RecordEventPublisher
	InstanceID string
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, infra Infrastructure) *Injector {
	format := valueobject.NewDisplayFormat(cfg.Dashboard.CurrencyPrefix)

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	recordRepo := persistence.NewRecordRepository(db)

	// Adapters/services
	hasher := adapters.NewBcryptHasher(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

	var insightService adapter.InsightService
	if cfg.AI.GeminiAPIKey != "" {
		insightService = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	var snapshotCache adapter.SnapshotCache
	if infra.Redis != nil {
		snapshotCache = cache.NewSnapshotCache(infra.Redis, cfg.Redis.SnapshotTTL)
	}

	recordSource := dashboard.NewRecordSource(recordRepo, snapshotCache, infra.Publisher, infra.InstanceID)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, hasher, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, hasher, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, userRepo)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, recordSource)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Dashboard use cases, all reading through the one record source
	overviewUseCase := dashboard.NewGetFinancialOverviewUseCase(recordSource, format)
	breakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(recordSource, format)
	chartUseCase := dashboard.NewGetChartDataUseCase(recordSource, format)
	quickActionsUseCase := dashboard.NewGetQuickActionsUseCase()
	insightsUseCase := dashboard.NewGetInsightsUseCase(recordSource, insightService, format, cfg.AI.GeminiTimeout)

	// Record use cases
	listRecordsUseCase := record.NewListRecordsUseCase(recordSource, format)
	createRecordUseCase := record.NewCreateRecordUseCase(recordRepo, recordSource, format)
	updateRecordUseCase := record.NewUpdateRecordUseCase(recordRepo, recordSource, format)
	deleteRecordUseCase := record.NewDeleteRecordUseCase(recordRepo, recordSource)

	composePageUseCase := page.NewComposePageUseCase(
		getCurrentUserUseCase,
		recordSource,
		quickActionsUseCase,
		overviewUseCase,
		breakdownUseCase,
		chartUseCase,
		insightsUseCase,
		listRecordsUseCase,
	)

	// Controllers
	healthController := controller.NewHealthController(pingDB(db), pingRedis(infra.Redis))

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		getCurrentUserUseCase,
	)

	dashboardController := controller.NewDashboardController(
		overviewUseCase,
		breakdownUseCase,
		chartUseCase,
		quickActionsUseCase,
		insightsUseCase,
	)

	recordController := controller.NewRecordController(
		listRecordsUseCase,
		createRecordUseCase,
		updateRecordUseCase,
		deleteRecordUseCase,
	)

	pageController := controller.NewPageController(composePageUseCase)

	// Middleware
	var counter middleware.WindowCounter
	if infra.Redis != nil {
		counter = middleware.NewRedisWindowCounter(infra.Redis)
	} else {
		counter = middleware.NewMemoryWindowCounter()
	}

	// Higher limits in test environments to prevent flaky scenarios
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.IsTest() {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(counter, cfg.RateLimit.Enabled, 1000, time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(counter, cfg.RateLimit.Enabled)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		pageController,
		dashboardController,
		recordController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		RecordSource: recordSource,
	}
}

func pingDB(db *gorm.DB) func() bool {
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx) == nil
	}
}

// pingRedis returns nil when Redis is not configured, which reports the cache as disabled.
func pingRedis(client *redis.Client) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
