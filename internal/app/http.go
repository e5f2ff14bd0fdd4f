package app

import (
	"context"

	"github.com/zstrangeway/plydojo/internal/auth/credentials"
	"github.com/zstrangeway/plydojo/internal/auth/handler"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/middleware"
	"github.com/zstrangeway/plydojo/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	opts := []credentials.Option{
		credentials.WithTimeout(cfg.ProviderTimeout),
	}
	if infra.Verifier != nil {
		opts = append(opts, credentials.WithVerifier(infra.Verifier))
	}

	credentialService := credentials.NewService(infra.Provider, opts...)

	router := NewRouter(cfg, credentialService, infra.Limiter)

	return router, infra.Close, nil
}

// NewRouter builds the gin engine serving the auth endpoints.
func NewRouter(
	cfg config.Config,
	credentialService handler.CredentialService,
	limiter ratelimit.Limiter,
) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authHandler := handler.NewHandler(
		credentialService,
		limiter,
		cfg.Policy(),
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Recovery(),
	)

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	return router
}
