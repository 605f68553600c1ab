// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. SWEDBANK2YNAB_LOG_LEVEL.
	EnvPrefix = "SWEDBANK2YNAB"
	// ConfigName is the base name of the configuration file.
	ConfigName = "swedbank2ynab"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Conversion struct {
		DateField     string `mapstructure:"date_field" yaml:"date_field"`
		PayeeField    string `mapstructure:"payee_field" yaml:"payee_field"`
		ProductInMemo bool   `mapstructure:"product_in_memo" yaml:"product_in_memo"`
		Encoding      string `mapstructure:"encoding" yaml:"encoding"`
	} `mapstructure:"conversion" yaml:"conversion"`

	Output struct {
		Path string `mapstructure:"path" yaml:"path"`
		CRLF bool   `mapstructure:"crlf" yaml:"crlf"`
	} `mapstructure:"output" yaml:"output"`
}

// FlagKeys maps command-line flag names to the configuration keys they
// override.
var FlagKeys = map[string]string{
	"log-level":       "log.level",
	"log-format":      "log.format",
	"date-field":      "conversion.date_field",
	"payee-field":     "conversion.payee_field",
	"product-in-memo": "conversion.product_in_memo",
	"encoding":        "conversion.encoding",
	"output":          "output.path",
	"crlf":            "output.crlf",
}

// InitializeConfig loads the configuration. Later sources override earlier
// ones: defaults, the YAML file, SWEDBANK2YNAB_* environment variables and
// finally the flags in flags that were set on the command line.
//
// configFile names the YAML file explicitly; when empty swedbank2ynab.yaml
// is looked up in $HOME/.swedbank2ynab, ./.swedbank2ynab and the current
// directory, and its absence is not an error. flags may be nil.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath("$HOME/.swedbank2ynab")
		v.AddConfigPath(".swedbank2ynab")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. Command-line flags
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Conversion defaults
	v.SetDefault("conversion.date_field", models.ColumnBookingDate)
	v.SetDefault("conversion.payee_field", models.ColumnDescription)
	v.SetDefault("conversion.product_in_memo", false)
	v.SetDefault("conversion.encoding", "")

	// Output defaults
	v.SetDefault("output.path", "-")
	v.SetDefault("output.crlf", true)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !slices.Contains(models.DateColumns(), config.Conversion.DateField) {
		return fmt.Errorf("invalid date field: %s (must be one of %s)",
			config.Conversion.DateField, strings.Join(models.DateColumns(), ", "))
	}

	if !slices.Contains(models.PayeeColumns(), config.Conversion.PayeeField) {
		return fmt.Errorf("invalid payee field: %s (must be one of %s)",
			config.Conversion.PayeeField, strings.Join(models.PayeeColumns(), ", "))
	}

	return nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
