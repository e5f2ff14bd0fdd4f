package app

import (
	"context"
	"fmt"

	"github.com/zstrangeway/plydojo/internal/auth/credentials"
	"github.com/zstrangeway/plydojo/internal/auth/provider/cognito"
	"github.com/zstrangeway/plydojo/internal/auth/token"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/logger"
	"github.com/zstrangeway/plydojo/internal/ratelimit"
	"github.com/zstrangeway/plydojo/internal/redis"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

type Infra struct {
	Provider *cognito.Provider
	Verifier token.Verifier
	Limiter  ratelimit.Limiter

	closers []func() error
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	provider, err := newCognitoProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	infra := &Infra{Provider: provider}

	if cfg.VerifyIDToken {
		infra.Verifier = token.NewCognitoVerifier(
			context.WithoutCancel(ctx),
			cfg.AWSRegion,
			cfg.UserPoolID,
			cfg.UserPoolClientID,
		)
		logger.Info("id token verification enabled", map[string]any{
			"issuer": token.CognitoIssuer(cfg.AWSRegion, cfg.UserPoolID),
		})
	}

	infra.Limiter, err = infra.setupLimiter(ctx, cfg)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	return infra, nil
}

func newCognitoProvider(ctx context.Context, cfg config.Config) (*cognito.Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		// failed provider calls surface immediately; clients retry
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	provider, err := cognito.New(
		cip.NewFromConfig(awsCfg),
		cfg.UserPoolID,
		cfg.UserPoolClientID,
		cfg.UserPoolClientSecret,
	)
	if err != nil {
		return nil, err
	}

	logger.Info("cognito ready", map[string]any{
		"region":       awsCfg.Region,
		"user_pool_id": cfg.UserPoolID,
		"client_id":    cfg.UserPoolClientID,
	})

	return provider, nil
}

// NewCredentialService builds the credential exchange on top of Cognito
// without any HTTP or throttling infrastructure. Used by the admin CLI.
func NewCredentialService(ctx context.Context, cfg config.Config) (*credentials.Service, error) {
	provider, err := newCognitoProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return credentials.NewService(provider, credentials.WithTimeout(cfg.ProviderTimeout)), nil
}

func (i *Infra) setupLimiter(ctx context.Context, cfg config.Config) (ratelimit.Limiter, error) {
	if cfg.LoginAttemptsPerMinute == 0 {
		logger.Info("throttling disabled", nil)
		return ratelimit.Unlimited{}, nil
	}

	if cfg.RedisAddr == "" {
		ml := ratelimit.NewMemoryLimiter(cfg.LoginAttemptsPerMinute)
		i.closers = append(i.closers, ml.Close)
		logger.Info("in-memory throttle ready", map[string]any{
			"per_minute": cfg.LoginAttemptsPerMinute,
		})
		return ml, nil
	}

	client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	i.closers = append(i.closers, client.Close)

	logger.Info("redis throttle ready", map[string]any{
		"addr":       cfg.RedisAddr,
		"per_minute": cfg.LoginAttemptsPerMinute,
	})
	return ratelimit.NewRedisLimiter(client.Client, cfg.LoginAttemptsPerMinute), nil
}

func (i *Infra) Close() error {
	var firstErr error
	for _, c := range i.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
