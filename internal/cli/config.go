package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/gardenplan/internal/paths"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "GARDENPLAN"

	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyCatalog    = "catalog"
	cfgKeyLastFrost  = "last_frost"
	cfgKeyFirstFrost = "first_frost"
	cfgKeyStrategy   = "strategy"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# gardenplan configuration

# Storage backend
backend: sqlite

# Data directory (optional; --data-dir wins)
# data_dir:

# Crop catalog YAML replacing the built-in one (optional; --catalog wins)
# catalog:

# Average frost dates for the site, quoted YYYY-MM-DD
# last_frost: "2026-04-15"
# first_frost: "2026-10-15"

# Quantity strategy: maximize, use-all-seeds or balanced
# strategy: balanced
`

// settings are the resolved configuration values. Every key may also come
// from a GARDENPLAN_<KEY> environment variable.
type settings struct {
	Backend    string
	DataDir    string
	Catalog    string
	LastFrost  string
	FirstFrost string
	Strategy   string
}

// loadEnvFiles loads .env from the config directory and then the working
// directory. Variables already set in the environment are never replaced.
// Missing files are skipped.
func loadEnvFiles(configDir string) error {
	for _, path := range []string{paths.EnvFile(configDir), paths.EnvFileName} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// loadConfig reads config.yaml from configDir with Viper, creating the
// directory and a default file on first run.
func loadConfig(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return settings{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyDataDir, cfgKeyCatalog, cfgKeyLastFrost, cfgKeyFirstFrost, cfgKeyStrategy} {
		if err := v.BindEnv(key); err != nil {
			return settings{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return settings{
		Backend:    v.GetString(cfgKeyBackend),
		DataDir:    v.GetString(cfgKeyDataDir),
		Catalog:    v.GetString(cfgKeyCatalog),
		LastFrost:  v.GetString(cfgKeyLastFrost),
		FirstFrost: v.GetString(cfgKeyFirstFrost),
		Strategy:   v.GetString(cfgKeyStrategy),
	}, nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
