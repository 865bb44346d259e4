package handlers

import (
	"net/http"

	"github.com/SscSPs/player_tracker/cmd/docs"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/SscSPs/player_tracker/internal/platform/config"
	"github.com/SscSPs/player_tracker/internal/platform/events"
	"github.com/SscSPs/player_tracker/internal/platform/idempotency"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Infrastructure holds the shared components the routes need besides the services.
type Infrastructure struct {
	Limiter *limiter.Limiter  // Nil disables rate limiting
	Replay  idempotency.Store // Stored responses for Idempotency-Key replays
	Hub     *events.Hub       // Nil disables the realtime feed
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	RegisterValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		middleware.RespondOK(c, http.StatusOK, gin.H{"service": "player-tracker"})
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, infra)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if infra.Limiter != nil {
		chain = append(chain, middleware.RateLimit(infra.Limiter))
	}
	replay := infra.Replay
	if replay == nil {
		replay = idempotency.NewMemoryStore()
	}
	chain = append(chain, middleware.Idempotency(replay, cfg.IdempotencyTTL))

	v1 := r.Group("/api/v1", chain...)

	registerCasinoRoutes(v1, service.Casino)
	registerStaffRoutes(v1, service.Auth)
	registerPlayerRoutes(v1, service.Player, service.Visit, service.Loyalty)
	registerVisitRoutes(v1, service)
	registerTableRoutes(v1, service.Table, service.Casino)
	registerRatingSlipRoutes(v1, service.RatingSlip, service.Casino)
	registerFinancialRoutes(v1, service.Financial)
	registerRealtimeRoutes(v1, infra.Hub)
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
