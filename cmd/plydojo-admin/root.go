package main

import (
	"context"
	"os"

	"github.com/zstrangeway/plydojo/internal/app"
	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/auth/credentials"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/logger"

	"github.com/spf13/cobra"
)

// userCreator is the slice of the credential service the commands need.
type userCreator interface {
	CreateUser(ctx context.Context, email, password, name string, opts ...credentials.CreateOption) (*auth.User, error)
}

// creatorFactory builds the user creator lazily so --help works without
// any pool configuration.
type creatorFactory func(ctx context.Context) (userCreator, error)

func newRootCmd(factory creatorFactory) *cobra.Command {
	var verbose bool

	if factory == nil {
		factory = cognitoCreator
	}

	root := &cobra.Command{
		Use:   "plydojo-admin",
		Short: "PlyDojo account administration",
		Long: `plydojo-admin manages accounts in the PlyDojo Cognito user pool.

Example usage:
  plydojo-admin create-user --email ann@example.com --password 'S3cret!pass' --name Ann
  plydojo-admin seed-test-user`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger.SetOutput(os.Stderr, level)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newCreateUserCmd(factory),
		newSeedTestUserCmd(factory),
	)

	return root
}

func cognitoCreator(ctx context.Context) (userCreator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, err := app.NewCredentialService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
