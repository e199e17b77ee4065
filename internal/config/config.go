// Package config loads formwizard CLI settings from defaults, an optional
// YAML file and FORMWIZARD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FORMWIZARD_LOG_LEVEL.
const EnvPrefix = "FORMWIZARD"

// Config holds application configuration.
type Config struct {
	Wizard      string            `mapstructure:"wizard"`
	Locale      string            `mapstructure:"locale"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Output      OutputConfig      `mapstructure:"output"`
	Log         LogConfig         `mapstructure:"log"`
}

// DefinitionsConfig locates wizard definitions and their OpenAPI document.
// A blank Dir selects the bundled catalogue.
type DefinitionsConfig struct {
	Dir     string `mapstructure:"dir"`
	OpenAPI string `mapstructure:"openapi"`
}

// OutputConfig selects how the submitted record is printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. When path is empty the FORMWIZARD_CONFIG env var
// is consulted, then ./formwizard.yaml and $HOME/.config/formwizard/config.yaml
// are searched; a missing search-path file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("wizard", "organization")
	v.SetDefault("locale", "en")
	v.SetDefault("definitions.dir", "")
	v.SetDefault("definitions.openapi", "")
	v.SetDefault("output.format", "json")
	v.SetDefault("log.level", "warn")

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formwizard"))
		v.SetConfigName("formwizard")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return c, nil
}
