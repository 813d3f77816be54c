package domain

// Config mirrors ~/.animeprompt/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Storage             StorageSettings   `yaml:"storage"`
	Models              []ModelDefinition `yaml:"models"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel    string `yaml:"default_model"`
	TimeoutSeconds  int    `yaml:"timeout"`
	HistoryWindow   int    `yaml:"history_window"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`
}

// StorageSettings locates the credential cache and the keyword history.
type StorageSettings struct {
	KeyFile        string `yaml:"key_file"`
	CredentialEnv  string `yaml:"credential_env"`
	HistoryBackend string `yaml:"history_backend"`
	HistoryFile    string `yaml:"history_file"`
	HistoryDB      string `yaml:"history_db"`
}
