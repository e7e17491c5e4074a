package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort     string `toml:"server_port"`
	EnableWebUI    *bool  `toml:"enable_web_ui"`
	BasePath       string `toml:"base_path"`
	DefaultUnit    string `toml:"default_unit"`
	EnableUsageLog *bool  `toml:"enable_usage_log"`
	RateLimit      *int   `toml:"rate_limit"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

// ConfigPath returns the path to the config file (~/.mpgconverter/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	return LoadFileFrom(ConfigPath())
}

// LoadFileFrom loads configuration from the TOML file at path.
func LoadFileFrom(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# MPG Converter Configuration
# server_port = ":8080"
# enable_web_ui = true

# Routes are served at / and again under this prefix
# base_path = "/mpg-converter"

# Source unit used when a request does not name one:
# impmpg, usmpg, kpl, lper100km, mpl, kmpig, kmpusg
# default_unit = "impmpg"

# Record per-unit usage statistics in the local database
# enable_usage_log = true

# Requests per minute per client on /api/convert (0 = unlimited)
# rate_limit = 0

# log_level = "info"   # debug, info, warn, error
# log_format = "text"  # text or json
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
