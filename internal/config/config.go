package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Engine configuration
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`

	// Daemon configuration
	Daemon DaemonConfig `mapstructure:"daemon" yaml:"daemon"`

	// Web server configuration
	Web WebConfig `mapstructure:"web" yaml:"web"`

	// Logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // Path to SQLite database file
}

// EngineConfig holds corner detection behavior configuration
type EngineConfig struct {
	PollInterval    time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`         // How often to sample the cursor position
	MinPollInterval time.Duration `mapstructure:"min_poll_interval" yaml:"min_poll_interval"` // Minimum allowed poll interval
	MaxPollInterval time.Duration `mapstructure:"max_poll_interval" yaml:"max_poll_interval"` // Maximum allowed poll interval
	Tolerance       float64       `mapstructure:"tolerance" yaml:"tolerance"`                 // Corner margin in screen units
	MaxTolerance    float64       `mapstructure:"max_tolerance" yaml:"max_tolerance"`         // Maximum allowed tolerance
	Cooldown        time.Duration `mapstructure:"cooldown" yaml:"cooldown"`                   // Minimum gap between repeat triggers of a corner
	Autostart       bool          `mapstructure:"autostart" yaml:"autostart"`                 // Begin monitoring as soon as the daemon starts
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `mapstructure:"pid_file" yaml:"pid_file"` // Path to PID file for daemon management
}

// WebConfig holds web server configuration
type WebConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"` // Whether to serve the dashboard
	Host    string `mapstructure:"host" yaml:"host"`       // Host to bind web server to
	Port    int    `mapstructure:"port" yaml:"port"`       // Port for web server
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
	File  string `mapstructure:"file" yaml:"file"`   // Empty means log to stderr
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/hotcorners/hotcorners.db
		},
		Engine: EngineConfig{
			PollInterval:    100 * time.Millisecond,
			MinPollInterval: 20 * time.Millisecond,
			MaxPollInterval: 5 * time.Second,
			Tolerance:       20,
			MaxTolerance:    200,
			Cooldown:        time.Second,
			Autostart:       true,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/hotcorners-%d.pid", os.Getuid()),
		},
		Web: WebConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    10000 + os.Getuid(), // Default port based on user ID
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate engine settings
	if c.Engine.PollInterval < c.Engine.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Engine.PollInterval, c.Engine.MinPollInterval)
	}

	if c.Engine.PollInterval > c.Engine.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Engine.PollInterval, c.Engine.MaxPollInterval)
	}

	if c.Engine.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Engine.Tolerance)
	}

	if c.Engine.Tolerance > c.Engine.MaxTolerance {
		return fmt.Errorf("tolerance (%v) cannot be greater than maximum (%v)",
			c.Engine.Tolerance, c.Engine.MaxTolerance)
	}

	if c.Engine.Cooldown < 0 {
		return fmt.Errorf("cooldown cannot be negative")
	}

	// Validate web config
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	// Validate daemon config
	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Engine.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Engine.MinPollInterval)
	}
	if interval > c.Engine.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Engine.MaxPollInterval)
	}
	c.Engine.PollInterval = interval
	return nil
}

// SetTolerance sets the corner margin with validation
func (c *Config) SetTolerance(tolerance float64) error {
	if tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", tolerance)
	}
	if tolerance > c.Engine.MaxTolerance {
		return fmt.Errorf("tolerance cannot be greater than %v", c.Engine.MaxTolerance)
	}
	c.Engine.Tolerance = tolerance
	return nil
}

// SetCooldown sets the repeat-trigger cooldown with validation
func (c *Config) SetCooldown(cooldown time.Duration) error {
	if cooldown < 0 {
		return fmt.Errorf("cooldown cannot be negative")
	}
	c.Engine.Cooldown = cooldown
	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Engine:
    Poll Interval: %v
    Min Interval: %v
    Max Interval: %v
    Tolerance: %v
    Cooldown: %v
    Autostart: %v
  Daemon:
    PID File: %s
  Web:
    Enabled: %v
    Host: %s
    Port: %d
  Log:
    Level: %s
    File: %s`,
		c.Database.Path,
		c.Engine.PollInterval,
		c.Engine.MinPollInterval,
		c.Engine.MaxPollInterval,
		c.Engine.Tolerance,
		c.Engine.Cooldown,
		c.Engine.Autostart,
		c.Daemon.PIDFile,
		c.Web.Enabled,
		c.Web.Host,
		c.Web.Port,
		c.Log.Level,
		c.Log.File,
	)
}
