package cli

import (
	"github.com/kevinfinalboss/crmreports/internal/config"
	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

var i18n *logger.Logger

func initI18n() {
	if cfgFile != "" {
		if tempCfg, err := config.Load(cfgFile); err == nil && tempCfg != nil {
			i18n = logger.NewWithConfig(tempCfg)
			return
		}
	}

	defaultCfg := &types.Config{
		Settings: types.SettingsConfig{
			Language: getLanguageFromFlags(),
			LogLevel: "info",
		},
	}

	i18n = logger.NewWithConfig(defaultCfg)
}

func getLanguageFromFlags() string {
	if language != "" {
		return language
	}
	return logger.DefaultLanguage
}

func getMessage(key string) string {
	if i18n == nil {
		initI18n()
	}
	return i18n.GetMessage(key)
}
