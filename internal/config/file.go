package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "HOTCORNERS"
)

// ConfigDir returns the directory holding the config file
// (~/.config/hotcorners on Linux, the platform equivalent elsewhere).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, "hotcorners"), nil
}

// Load reads configuration from the config file and environment.
// Environment variables use the HOTCORNERS_ prefix with underscores, e.g.
// HOTCORNERS_ENGINE_POLL_INTERVAL=250ms. A missing config file is not an
// error; defaults apply.
func Load() (*Config, error) {
	return load("")
}

// LoadFile reads configuration from an explicit file path. Unlike Load,
// the file must exist and parse.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	// Environment variable support
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered so env-only overrides are picked up by
	// Unmarshal.
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file location.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return c.SaveTo(filepath.Join(dir, configName+"."+configType))
}

// SaveTo writes the configuration to an explicit file path.
func (c *Config) SaveTo(path string) error {
	v := viper.New()
	v.SetConfigType(configType)

	v.Set("database.path", c.Database.Path)
	v.Set("engine.poll_interval", c.Engine.PollInterval.String())
	v.Set("engine.min_poll_interval", c.Engine.MinPollInterval.String())
	v.Set("engine.max_poll_interval", c.Engine.MaxPollInterval.String())
	v.Set("engine.tolerance", c.Engine.Tolerance)
	v.Set("engine.max_tolerance", c.Engine.MaxTolerance)
	v.Set("engine.cooldown", c.Engine.Cooldown.String())
	v.Set("engine.autostart", c.Engine.Autostart)
	v.Set("daemon.pid_file", c.Daemon.PIDFile)
	v.Set("web.enabled", c.Web.Enabled)
	v.Set("web.host", c.Web.Host)
	v.Set("web.port", c.Web.Port)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)

	return v.WriteConfigAs(path)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("engine.poll_interval", d.Engine.PollInterval)
	v.SetDefault("engine.min_poll_interval", d.Engine.MinPollInterval)
	v.SetDefault("engine.max_poll_interval", d.Engine.MaxPollInterval)
	v.SetDefault("engine.tolerance", d.Engine.Tolerance)
	v.SetDefault("engine.max_tolerance", d.Engine.MaxTolerance)
	v.SetDefault("engine.cooldown", d.Engine.Cooldown)
	v.SetDefault("engine.autostart", d.Engine.Autostart)
	v.SetDefault("daemon.pid_file", d.Daemon.PIDFile)
	v.SetDefault("web.enabled", d.Web.Enabled)
	v.SetDefault("web.host", d.Web.Host)
	v.SetDefault("web.port", d.Web.Port)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
