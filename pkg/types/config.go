package types

type FieldTemplate struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Date  bool   `yaml:"date,omitempty"`
}

type RequestTemplate struct {
	URL    string                   `yaml:"url,omitempty"`
	Data   map[string]FieldTemplate `yaml:"data,omitempty"`
	Params map[string]FieldTemplate `yaml:"params,omitempty"`
}

type ReportConfig struct {
	UUID          string                          `yaml:"uuid"`
	DelayAttempts int                             `yaml:"delay_attempts"`
	MaxAttempts   int                             `yaml:"max_attempts"`
	Requests      map[RequestKind]RequestTemplate `yaml:"requests"`
}

type SearchEndpoint struct {
	URL  string `yaml:"url"`
	UUID string `yaml:"uuid"`
}

type SearchConfig struct {
	Endpoints    map[ReportKind]SearchEndpoint `yaml:"endpoints"`
	EnableDelay  int                           `yaml:"enable_delay"`
	SelectDelay  int                           `yaml:"select_delay"`
	PageParamKey string                        `yaml:"page_param_key"`
}

type CRMConfig struct {
	LoginURL       string                 `yaml:"login_url"`
	URLs           map[RequestKind]string `yaml:"urls"`
	Domain         string                 `yaml:"domain"`
	Username       string                 `yaml:"username"`
	Password       string                 `yaml:"password"`
	Verify         bool                   `yaml:"verify"`
	TimeoutSeconds int                    `yaml:"timeout_seconds"`
	Retries        int                    `yaml:"retries"`
}

type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
}

type SettingsConfig struct {
	Language string `yaml:"language"`
	LogLevel string `yaml:"log_level"`
	Output   string `yaml:"output"`
}

type Config struct {
	Settings SettingsConfig              `yaml:"settings"`
	CRM      CRMConfig                   `yaml:"crm"`
	Headers  map[string]string           `yaml:"headers"`
	Reports  map[ReportKind]ReportConfig `yaml:"reports"`
	Search   SearchConfig                `yaml:"search"`
	Cache    CacheConfig                 `yaml:"cache"`
}
