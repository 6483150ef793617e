package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinfinalboss/crmreports/internal/composer"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "ru-RU", cfg.Settings.Language)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 5, cfg.CRM.Retries)
	assert.True(t, cfg.CRM.Verify)
	assert.Equal(t, 1, cfg.Search.EnableDelay)
	assert.Equal(t, 2, cfg.Search.SelectDelay)
	assert.Equal(t, "pagination", cfg.Search.PageParamKey)

	for _, kind := range types.AllReportKinds {
		_, ok := cfg.Reports[kind]
		assert.True(t, ok, "no template for %q", kind)
	}

	for _, kind := range []types.RequestKind{types.RequestCreate, types.RequestOpen, types.RequestDelete, types.RequestControl} {
		assert.NotEmpty(t, cfg.CRM.URLs[kind], "no url for %s", kind)
	}

	sl := cfg.Reports[types.ReportServiceLevel].Requests[types.RequestCreate]
	assert.True(t, sl.Data["start_date"].Date)
	assert.Equal(t, "15", sl.Data["deadline"].Value)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	t.Setenv(EnvDomain, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	t.Setenv(EnvDomain, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `settings:
  language: en-US
crm:
  login_url: https://crm.test/login
  username: operator
  urls:
    search_report: https://crm.test/open
reports:
  mttr report:
    uuid: list$9
    delay_attempts: 1
    max_attempts: 2
search:
  select_delay: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en-US", cfg.Settings.Language)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "json", cfg.Settings.Output)
	assert.Equal(t, "operator", cfg.CRM.Username)
	assert.Equal(t, "https://crm.test/open", cfg.CRM.URLs[types.RequestOpen])
	assert.Equal(t, GetDefaultConfig().CRM.URLs[types.RequestCreate], cfg.CRM.URLs[types.RequestCreate])
	assert.Equal(t, 5, cfg.CRM.Retries)
	assert.Equal(t, 30, cfg.CRM.TimeoutSeconds)
	assert.True(t, cfg.CRM.Verify)

	mttr := cfg.Reports[types.ReportMTTR]
	assert.Equal(t, "list$9", mttr.UUID)
	assert.Equal(t, 1, mttr.DelayAttempts)
	assert.Equal(t, 2, mttr.MaxAttempts)
	assert.Equal(t, GetDefaultConfig().Reports[types.ReportMTTR].Requests, mttr.Requests)
	assert.Contains(t, cfg.Reports, types.ReportServiceLevel)

	request, err := composer.New(cfg).Compose(types.ReportMTTR, types.RequestCreate, map[string]string{
		"start_date": "01.10.2026",
		"end_date":   "16.10.2026",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "01.10.2026", request.Data()["parameter_startDate"])
	assert.Equal(t, GetDefaultConfig().CRM.URLs[types.RequestCreate], request.URL())

	assert.Equal(t, 1, cfg.Search.EnableDelay)
	assert.Equal(t, 7, cfg.Search.SelectDelay)
	assert.Contains(t, cfg.Search.Endpoints, types.ReportIssuesSearch)
	assert.NotEmpty(t, cfg.Headers)
}

func TestLoad_MergesReportSections(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	t.Setenv(EnvDomain, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `crm:
  verify: false
reports:
  flr report:
    requests:
      search_report:
        url: https://crm.test/flr
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.CRM.Verify)

	defaults := GetDefaultConfig().Reports[types.ReportFLR]
	flr := cfg.Reports[types.ReportFLR]
	assert.Equal(t, defaults.UUID, flr.UUID)
	assert.Equal(t, defaults.DelayAttempts, flr.DelayAttempts)
	assert.Equal(t, defaults.MaxAttempts, flr.MaxAttempts)
	assert.Equal(t, "https://crm.test/flr", flr.Requests[types.RequestOpen].URL)
	assert.Equal(t, defaults.Requests[types.RequestCreate], flr.Requests[types.RequestCreate])
	assert.Equal(t, defaults.Requests[types.RequestDelete], flr.Requests[types.RequestDelete])
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvPassword, "env-secret")
	t.Setenv(EnvDomain, "CORP")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crm:\n  username: file-user\n  password: file-secret\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-user", cfg.CRM.Username)
	assert.Equal(t, "env-secret", cfg.CRM.Password)
	assert.Equal(t, "CORP", cfg.CRM.Domain)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	t.Setenv(EnvDomain, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := GetDefaultConfig()
	cfg.CRM.Username = "operator"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
