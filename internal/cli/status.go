package cli

import (
	"fmt"

	"github.com/kevinfinalboss/crmreports/internal/transport"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: getMessage("status_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := transport.New(cfg.CRM, log)
		if err != nil {
			log.Error("operation_failed").Err(err).Send()
			return err
		}

		if err := session.Login(cmd.Context()); err != nil {
			log.Error("not_authorized").Err(err).Send()
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", getMessage("crm_login_success"), cfg.CRM.LoginURL)
		log.Info("operation_completed").
			Str("operation", "status").
			Send()
		return nil
	},
}
