package domain

// Config mirrors ~/.investigator/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Paths               PathSettings      `yaml:"paths"`
	Tools               ToolSettings      `yaml:"tools"`
	Modules             ModuleSettings    `yaml:"modules"`
	Security            SecuritySettings  `yaml:"security"`
	Cache               CacheSettings     `yaml:"cache"`
}

// Preferences captures user level toggles.
type Preferences struct {
	Language            string `yaml:"language"`
	DefaultModel        string `yaml:"default_model"`
	ToolTimeoutSeconds  int    `yaml:"tool_timeout"`
	ModelTimeoutSeconds int    `yaml:"model_timeout"`
}

// PathSettings locates everything the assistant writes to disk.
type PathSettings struct {
	LogsDir      string `yaml:"logs_dir"`
	SessionsFile string `yaml:"sessions_file"`
	HistoryDB    string `yaml:"history_db"`
}

// ToolSettings names the external binaries and their inputs.
type ToolSettings struct {
	Nmap         string `yaml:"nmap"`
	Nikto        string `yaml:"nikto"`
	Ffuf         string `yaml:"ffuf"`
	FfufWordlist string `yaml:"ffuf_wordlist"`
}

// ModuleSettings configures the in-process recon modules.
type ModuleSettings struct {
	LeakCheck    LeakCheckSettings    `yaml:"leak_check"`
	UsernameHunt UsernameHuntSettings `yaml:"username_hunt"`
}

// LeakCheckSettings configures the breach lookup module.
type LeakCheckSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// UsernameHuntSettings configures the username enumeration module.
type UsernameHuntSettings struct {
	Enabled        bool   `yaml:"enabled"`
	SitesFile      string `yaml:"sites_file"`
	Concurrency    int    `yaml:"concurrency"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// SecuritySettings defines target guardrail behavior.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// CacheSettings configures the classification cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}
