package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kevinfinalboss/crmreports/internal/config"
	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	cfgFile  string
	language string
	logLevel string
	output   string
	log      *logger.Logger
	cfg      *types.Config
)

var rootCmd = &cobra.Command{
	Use:          "crmreports",
	Short:        getMessage("root_short"),
	SilenceUsage: true,
	Long: `crmreports builds reports in the Naumen CRM, reads them back and prints
open issues, service level, MTTR, FLR, AHT and search results as JSON or HTML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if language != "" {
			cfg.Settings.Language = language
		}
		if logLevel != "" {
			cfg.Settings.LogLevel = logLevel
		}
		if output != "" {
			cfg.Settings.Output = output
		}

		log = logger.NewWithConfig(cfg)

		if cfgFile == "" {
			log.Debug("config_not_found").Send()
		} else {
			log.Debug("config_loaded").Str("file", cfgFile).Send()
		}

		log.Debug("app_started").
			Str("version", Version).
			Str("language", cfg.Settings.Language).
			Str("output", cfg.Settings.Output).
			Send()

		return nil
	},
}

// Execute runs the command tree. An interrupt cancels the running report,
// the report cleanup still completes.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.crmreports/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "log language (ru-RU, en-US)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "response format (json, html)")

	addSubcommands()
}

func addSubcommands() {
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(slCmd)
	rootCmd.AddCommand(mttrCmd)
	rootCmd.AddCommand(flrCmd)
	rootCmd.AddCommand(ahtCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
}
