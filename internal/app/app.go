package app

import (
	"context"
	"net/http"
	"time"

	"github.com/zstrangeway/plydojo/internal/config"

	"github.com/gin-gonic/gin"
)

type App struct {
	router     *gin.Engine
	httpServer *http.Server
	cleanup    func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		router:     router,
		httpServer: server,
		cleanup:    cleanup,
	}, nil
}

// Router exposes the HTTP handler for hosts other than the built-in
// server, such as the Lambda adapter.
func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Run() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.Close()
}

// Close releases infrastructure without touching the HTTP server.
func (a *App) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
