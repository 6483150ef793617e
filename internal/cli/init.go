package cli

import (
	"os"

	"github.com/kevinfinalboss/crmreports/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: getMessage("init_short"),
	Long:  "Writes a configuration file with every report template to ~/.crmreports/config.yaml or the --config path",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func initConfig() error {
	configFile := cfgFile
	if configFile == "" {
		path, err := config.DefaultPath()
		if err != nil {
			log.Error("operation_failed").Err(err).Send()
			return err
		}
		configFile = path
	}

	if _, err := os.Stat(configFile); err == nil {
		log.Warn("config_already_exists").Str("file", configFile).Send()
		return nil
	}

	exampleConfig := config.GetDefaultConfig()
	exampleConfig.Settings = cfg.Settings

	if err := config.Save(exampleConfig, configFile); err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	log.Info("config_created").Str("file", configFile).Send()
	log.Info("operation_completed").Str("operation", "init").Send()

	return nil
}
