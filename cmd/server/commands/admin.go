package commands

import (
	"fmt"

	"github.com/corpsite/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminUsername string
	adminPassword string
	adminEmail    string
	adminRole     string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back office account",
	Example: `  corpsite create-admin --username alice --password 's3cret-pass'
  corpsite create-admin --username bob --password 'bob-pass-1' --role editor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		user, err := service.NewAdminUserService(rt.db).Create(service.AdminUserInput{
			Username: &adminUsername,
			Password: &adminPassword,
			Email:    &adminEmail,
			Role:     &adminRole,
		})
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		rt.logger.Info("admin user created", zap.String("username", user.Username), zap.String("role", user.Role))
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "login name (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password, at least 8 characters (required)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "contact email")
	createAdminCmd.Flags().StringVar(&adminRole, "role", "admin", "admin or editor")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}
