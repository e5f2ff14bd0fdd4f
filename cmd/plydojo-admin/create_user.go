package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/validate"

	"github.com/spf13/cobra"
)

func newCreateUserCmd(factory creatorFactory) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with a permanent password",
		Long: `Create a pending account in the user pool. The account is created with
a random temporary password which is immediately replaced by --password.

Examples:
  plydojo-admin create-user --email ann@example.com --password 'S3cret!pass' --name Ann`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if !validate.IsEmailShape(email) {
				return fmt.Errorf("invalid email %q", email)
			}
			if password == "" {
				return errors.New("--password is required")
			}
			if name == "" {
				name, _, _ = strings.Cut(email, "@")
			}

			creator, err := factory(cmd.Context())
			if err != nil {
				return err
			}

			user, err := creator.CreateUser(cmd.Context(), email, password, name)
			if err != nil {
				return describeCreateError(err)
			}

			printUser(cmd, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "permanent password (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: email local part)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func describeCreateError(err error) error {
	var ce *auth.CreateUserError
	if errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", ce.Message(), err)
	}
	return err
}

func printUser(cmd *cobra.Command, user *auth.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", user.Email)
	fmt.Fprintf(out, "  id:      %s\n", user.ID)
	fmt.Fprintf(out, "  name:    %s\n", user.Name)
	fmt.Fprintf(out, "  status:  %s\n", user.Status)
	fmt.Fprintf(out, "  created: %s\n", auth.FormatTimestamp(user.CreatedAt))
}
