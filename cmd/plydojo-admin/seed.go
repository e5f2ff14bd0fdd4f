package main

import (
	"errors"
	"fmt"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/auth/credentials"

	"github.com/spf13/cobra"
)

const (
	testUserEmail    = "test@plydojo.com"
	testUserPassword = "TestPassword123!"
	testUserName     = "Test User"
)

func newSeedTestUserCmd(factory creatorFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-test-user",
		Short: "Create the shared test account if it does not exist",
		Long: fmt.Sprintf(`Create the test account %s used by local and preview stages.
Its email is marked verified so it can sign in and reset its password.
Running it against a pool that already holds the account is not an error.`, testUserEmail),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := factory(cmd.Context())
			if err != nil {
				return err
			}

			user, err := creator.CreateUser(
				cmd.Context(),
				testUserEmail,
				testUserPassword,
				testUserName,
				credentials.WithVerifiedEmail(),
			)
			if err != nil {
				var ce *auth.CreateUserError
				if errors.As(err, &ce) && ce.Reason == auth.CreateReasonAccountExists {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", testUserEmail)
					return nil
				}
				return describeCreateError(err)
			}

			printUser(cmd, user)
			return nil
		},
	}
}
