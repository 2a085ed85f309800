package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/expense_bot/cmd/docs"
	"github.com/SscSPs/expense_bot/internal/bot"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/middleware"
	"github.com/SscSPs/expense_bot/internal/platform/config"
	"github.com/SscSPs/expense_bot/internal/platform/telegram"
	"github.com/SscSPs/expense_bot/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerHomeRoutes(r)

	userLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}
	dispatcher := bot.NewDispatcher(
		services.SharedExpense,
		services.Expense,
		bot.WithCurrency(cfg.CurrencySymbol),
		bot.WithTracker(posthogClient),
	)
	var answerer callbackAnswerer
	if cfg.TelegramBotToken != "" {
		answerer = telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramAPIEndpoint)
	}
	registerWebhookRoutes(r, dispatcher, cfg.WebhookSecret, userLimiter, answerer)

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1",
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerLedgerRoutes(v1, services.SharedExpense, services.Expense)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
