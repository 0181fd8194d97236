// config.go: settings struct and functions to load the configuration.
package conf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// LogConfig holds file logging settings.
type LogConfig struct {
	Enabled bool   // true to log to a file as well as stderr
	Path    string // log file path
	MaxSize int    // maximum size in megabytes before rotation
	MaxAge  int    // days to retain rotated files
}

// RangeSettings is the fixed aggregation year range. Both bounds are
// inclusive and must be known before any data is loaded.
type RangeSettings struct {
	StartYear int
	EndYear   int
}

// Settings is the complete application configuration.
type Settings struct {
	Debug bool

	Main struct {
		Name string    // instance name used in log output
		Log  LogConfig // application log settings
	}

	Range RangeSettings

	Input struct {
		CSV struct {
			Path string // directory holding taxa.csv, events.csv, occurrences.csv
		}
	}

	Output struct {
		SQLite struct {
			Enabled bool
			Path    string
		}
	}

	Export struct {
		Path   string // directory the derived series are written into
		Format string // csv, json or yaml
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment into a validated
// Settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the
// configuration file. A missing config file is fine; defaults apply.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/mothtrap")

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

// Setting returns the current settings instance.
func Setting() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
