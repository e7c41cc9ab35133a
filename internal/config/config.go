package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"svgserve/internal/errors"
	"svgserve/internal/logging"
)

const (
	// DefaultBindAddress is the loopback bind used when no address is configured
	DefaultBindAddress = "127.0.0.1"
	// DefaultPort is the listen port used when no port is configured
	DefaultPort = 5000
	// DefaultIndexRoute is the route / redirects to when none is configured
	DefaultIndexRoute = "/home"
	// ConfigDirName is the subdirectory of the user config dir holding config.toml
	ConfigDirName = "svgserve"
	// ConfigFileName is the name of the on-disk configuration file
	ConfigFileName = "config.toml"
)

// ServerConfig holds the complete server configuration. It is constructed
// once at startup and shared read-only across all request handlers.
type ServerConfig struct {
	// BindAddress is the IP literal the listener binds to
	BindAddress string `json:"bind" mapstructure:"bind" toml:"bind"`

	// Port is the TCP port the listener binds to (1-65535)
	Port int `json:"port" mapstructure:"port" toml:"port"`

	// IndexRoute is the route / redirects to; must begin with /
	IndexRoute string `json:"index" mapstructure:"index" toml:"index"`

	// RootDir is the directory whose contents are served. After
	// CanonicalizeRoot it is absolute and symlink-free; every per-request
	// ancestry check compares against this canonical form.
	RootDir string `json:"root" mapstructure:"root" toml:"root"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level"`
}

// EnvOverride records a configuration value taken from the environment
type EnvOverride struct {
	EnvVar string `json:"envVar"`
	Value  string `json:"value"`
	Field  string `json:"field"`
}

// LoadResult carries the loaded configuration plus provenance details
type LoadResult struct {
	Config       *ServerConfig
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// Default returns the default configuration
func Default() *ServerConfig {
	return &ServerConfig{
		BindAddress: DefaultBindAddress,
		Port:        DefaultPort,
		IndexRoute:  DefaultIndexRoute,
		RootDir:     ".",
		Logging: LoggingConfig{
			Format: string(logging.HumanFormat),
			Level:  string(logging.InfoLevel),
		},
	}
}

// DefaultPath returns the default config file location under the user
// config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigDirName, ConfigFileName), nil
}

// Load reads the configuration file. An explicit path must exist and parse;
// otherwise config.toml is searched in the user config dir, and a missing
// file yields the defaults.
func Load(explicitPath string) (*LoadResult, error) {
	v := viper.New()

	v.SetDefault("bind", DefaultBindAddress)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("index", DefaultIndexRoute)
	v.SetDefault("root", ".")
	v.SetDefault("logging.format", string(logging.HumanFormat))
	v.SetDefault("logging.level", string(logging.InfoLevel))

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("cannot read config file %s", explicitPath), err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigDirName))
		}

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				return &LoadResult{Config: Default(), UsedDefaults: true}, nil
			}
			return nil, errors.New(errors.ConfigInvalid, "cannot read config file", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "cannot parse config file", err)
	}

	return &LoadResult{Config: &cfg, ConfigPath: v.ConfigFileUsed()}, nil
}

// envVarMappings lists the supported environment overrides in display order
var envVarMappings = []struct {
	envVar string
	field  string
	desc   string
}{
	{"SVGSERVE_BIND", "bind", "Bind address (IP literal)"},
	{"SVGSERVE_PORT", "port", "Listen port (1-65535)"},
	{"SVGSERVE_INDEX", "index", "Route / redirects to"},
	{"SVGSERVE_ROOT", "root", "Directory to serve"},
	{"SVGSERVE_LOG_FORMAT", "logging.format", "Log format (human, json)"},
	{"SVGSERVE_LOG_LEVEL", "logging.level", "Log level (debug, info, warn, error)"},
}

// ApplyEnv overlays environment variables onto the configuration and
// reports which values were overridden
func (c *ServerConfig) ApplyEnv() ([]EnvOverride, error) {
	var overrides []EnvOverride

	for _, m := range envVarMappings {
		value, ok := os.LookupEnv(m.envVar)
		if !ok || value == "" {
			continue
		}

		switch m.field {
		case "bind":
			c.BindAddress = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.New(errors.InvalidPort,
					fmt.Sprintf("%s=%q is not a number", m.envVar, value), err)
			}
			c.Port = port
		case "index":
			c.IndexRoute = value
		case "root":
			c.RootDir = value
		case "logging.format":
			c.Logging.Format = value
		case "logging.level":
			c.Logging.Level = value
		}

		overrides = append(overrides, EnvOverride{EnvVar: m.envVar, Value: value, Field: m.field})
	}

	return overrides, nil
}

// SupportedEnvVars returns the environment overrides with descriptions
// for documentation output
func SupportedEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envVarMappings))
	for _, m := range envVarMappings {
		vars = append(vars, [2]string{m.envVar, m.desc})
	}
	return vars
}

// Validate checks all configuration fields, returning a coded error for
// the first violation found
func (c *ServerConfig) Validate() error {
	if net.ParseIP(c.BindAddress) == nil {
		return errors.New(errors.InvalidBindAddress,
			fmt.Sprintf("bind address %q is not a valid IP literal", c.BindAddress), nil)
	}

	if c.Port < 1 || c.Port > 65535 {
		return errors.New(errors.InvalidPort,
			fmt.Sprintf("port %d is outside the valid range 1-65535", c.Port), nil)
	}

	if c.IndexRoute == "" || c.IndexRoute[0] != '/' {
		return errors.New(errors.InvalidIndexRoute,
			fmt.Sprintf("index route %q must begin with /", c.IndexRoute), nil)
	}

	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return errors.New(errors.ConfigInvalid, "invalid logging format", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.New(errors.ConfigInvalid, "invalid logging level", err)
	}

	return nil
}

// CanonicalizeRoot resolves RootDir to its absolute, symlink-free form and
// verifies it is an existing directory. Must run before the server starts:
// the resolver's ancestry checks assume the root is already canonical.
func (c *ServerConfig) CanonicalizeRoot() error {
	abs, err := filepath.Abs(c.RootDir)
	if err != nil {
		return errors.New(errors.RootNotFound,
			fmt.Sprintf("cannot resolve directory %q", c.RootDir), err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return errors.New(errors.RootNotFound,
			fmt.Sprintf("directory %q does not exist", c.RootDir), err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return errors.New(errors.RootNotFound,
			fmt.Sprintf("directory %q does not exist", c.RootDir), err)
	}
	if !info.IsDir() {
		return errors.New(errors.RootNotDirectory,
			fmt.Sprintf("%q is not a directory", c.RootDir), nil)
	}

	c.RootDir = canonical
	return nil
}

// Addr returns the listen address in host:port form
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// Save writes the configuration to the given path in TOML format,
// creating parent directories as needed
func (c *ServerConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(c)
}
