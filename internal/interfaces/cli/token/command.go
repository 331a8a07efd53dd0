package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"lldgw/internal/infrastructure/auth"
	"lldgw/internal/infrastructure/config"
)

var (
	env     string
	subject string
)

// NewCommand mints an operator token for the manual verification endpoint.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token",
		Long:  `Issue a JWT granting access to the manual verification endpoint.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "operator", "Token subject (operator name)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes)

	signed, err := jwtService.Generate(subject, auth.RoleOperator)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(signed)
	return nil
}
