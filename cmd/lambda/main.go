package main

import (
	"context"

	"github.com/zstrangeway/plydojo/internal/app"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.LogLevel)

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}
	defer application.Close()

	adapter := ginadapter.NewV2(application.Router())

	logger.Info("plydojo-api lambda ready", map[string]any{
		"stage": cfg.Stage,
	})

	lambda.Start(func(
		ctx context.Context,
		req events.APIGatewayV2HTTPRequest,
	) (events.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
