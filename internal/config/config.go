package config

import (
	"os"
	"path/filepath"

	"github.com/kevinfinalboss/crmreports/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".crmreports"
	configFileName = "config.yaml"

	defaultBaseURL = "https://crm.example.local/fx"
)

// Credentials in the environment take precedence over the config file.
const (
	EnvUsername = "CRM_USERNAME"
	EnvPassword = "CRM_PASSWORD"
	EnvDomain   = "CRM_DOMAIN"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func Load(configFile string) (*types.Config, error) {
	if configFile == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configFile = path
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			config := GetDefaultConfig()
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	// Keys absent from the file keep their default values, so a partial
	// crm section cannot turn TLS verification off.
	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyDefaults(config)
	applyEnv(config)
	return config, nil
}

func GetDefaultConfig() *types.Config {
	config := &types.Config{
		Settings: types.SettingsConfig{
			Language: "ru-RU",
			LogLevel: "info",
			Output:   "json",
		},
		CRM: types.CRMConfig{
			LoginURL:       defaultBaseURL + "/sd/ru.naumen.core.ui.Login",
			URLs:           defaultURLs(),
			Domain:         "",
			Username:       "",
			Password:       "",
			Verify:         true,
			TimeoutSeconds: 30,
			Retries:        5,
		},
		Headers: defaultHeaders(),
		Reports: defaultReports(),
		Search:  defaultSearch(),
		Cache: types.CacheConfig{
			Enabled:    true,
			TTLMinutes: 30,
		},
	}

	return config
}

func applyDefaults(config *types.Config) {
	if config.Settings.Language == "" {
		config.Settings.Language = "ru-RU"
	}
	if config.Settings.LogLevel == "" {
		config.Settings.LogLevel = "info"
	}
	if config.Settings.Output == "" {
		config.Settings.Output = "json"
	}

	if config.CRM.URLs == nil {
		config.CRM.URLs = map[types.RequestKind]string{}
	}
	for kind, url := range defaultURLs() {
		if config.CRM.URLs[kind] == "" {
			config.CRM.URLs[kind] = url
		}
	}
	if config.CRM.TimeoutSeconds == 0 {
		config.CRM.TimeoutSeconds = 30
	}
	if config.CRM.Retries == 0 {
		config.CRM.Retries = 5
	}

	if len(config.Headers) == 0 {
		config.Headers = defaultHeaders()
	}

	if config.Reports == nil {
		config.Reports = map[types.ReportKind]types.ReportConfig{}
	}
	for kind, report := range defaultReports() {
		config.Reports[kind] = mergeReport(config.Reports[kind], report)
	}

	defaults := defaultSearch()
	if config.Search.Endpoints == nil {
		config.Search.Endpoints = map[types.ReportKind]types.SearchEndpoint{}
	}
	for kind, endpoint := range defaults.Endpoints {
		if _, ok := config.Search.Endpoints[kind]; !ok {
			config.Search.Endpoints[kind] = endpoint
		}
	}
	if config.Search.EnableDelay == 0 {
		config.Search.EnableDelay = defaults.EnableDelay
	}
	if config.Search.SelectDelay == 0 {
		config.Search.SelectDelay = defaults.SelectDelay
	}
	if config.Search.PageParamKey == "" {
		config.Search.PageParamKey = defaults.PageParamKey
	}

	if config.Cache.TTLMinutes == 0 {
		config.Cache.TTLMinutes = 30
	}
}

// mergeReport fills what a report section leaves out from its default,
// request kind by request kind.
func mergeReport(report, defaults types.ReportConfig) types.ReportConfig {
	if report.UUID == "" {
		report.UUID = defaults.UUID
	}
	if report.DelayAttempts == 0 {
		report.DelayAttempts = defaults.DelayAttempts
	}
	if report.MaxAttempts == 0 {
		report.MaxAttempts = defaults.MaxAttempts
	}

	if report.Requests == nil {
		report.Requests = map[types.RequestKind]types.RequestTemplate{}
	}
	for kind, template := range defaults.Requests {
		if _, ok := report.Requests[kind]; !ok {
			report.Requests[kind] = template
		}
	}
	return report
}

func applyEnv(config *types.Config) {
	if v := os.Getenv(EnvUsername); v != "" {
		config.CRM.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		config.CRM.Password = v
	}
	if v := os.Getenv(EnvDomain); v != "" {
		config.CRM.Domain = v
	}
}

func Save(config *types.Config, configFile string) error {
	if configFile == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		configFile = path
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configFile, data, 0600)
}
