package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	mdwlog "github.com/msto63/raft/foundation/core/log"
	"github.com/msto63/raft/foundation/raft/token"
)

// Config holds the complete tool configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	REPL      REPLConfig      `toml:"repl" yaml:"repl"`
	History   HistoryConfig   `toml:"history" yaml:"history"`
	Backend   BackendConfig   `toml:"backend" yaml:"backend"`
	Watch     WatchConfig     `toml:"watch" yaml:"watch"`
	Highlight HighlightConfig `toml:"highlight" yaml:"highlight"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt         string `toml:"prompt" yaml:"prompt"`
	DisableHistory bool   `toml:"disable_history" yaml:"disable_history"`
	MaxOutputLines int    `toml:"max_output_lines" yaml:"max_output_lines"`
}

// HistoryConfig holds history store settings
type HistoryConfig struct {
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
	ListLimit int      `toml:"list_limit" yaml:"list_limit"`
}

// BackendConfig holds IR generation settings
type BackendConfig struct {
	ModuleName string         `toml:"module_name" yaml:"module_name"`
	Externs    []ExternConfig `toml:"externs" yaml:"externs"`
}

// ExternConfig declares a callable external function taking Params doubles
type ExternConfig struct {
	Name   string `toml:"name" yaml:"name"`
	Params int    `toml:"params" yaml:"params"`
}

// WatchConfig holds file watch settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// HighlightConfig holds syntax highlighting settings
type HighlightConfig struct {
	Style     string `toml:"style" yaml:"style"`
	Formatter string `toml:"formatter" yaml:"formatter"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// DefaultExterns are the functions callable without configuration
func DefaultExterns() []ExternConfig {
	return []ExternConfig{
		{Name: "printd", Params: 1},
		{Name: "sqrt", Params: 1},
		{Name: "sin", Params: 1},
		{Name: "cos", Params: 1},
		{Name: "pow", Params: 2},
	}
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to read config").WithCode(mdwerror.CodeConfigError)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").
				WithCode(mdwerror.CodeConfigError).
				WithDetail("path", path)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").
				WithCode(mdwerror.CodeConfigError).
				WithDetail("path", path)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the RAFT_CONFIG environment variable
// or the first default location that exists. Without any file the defaults
// are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("RAFT_CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv, in order
func DefaultPaths() []string {
	home := os.Getenv("HOME")
	return []string{
		"./raft.toml",
		"./raft.yaml",
		"./configs/raft.toml",
		filepath.Join(home, ".config/raft/config.toml"),
		filepath.Join(home, ".config/raft/config.yaml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "raft"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "${HOME}/.raft"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "Raft> "
	}
	if c.REPL.MaxOutputLines == 0 {
		c.REPL.MaxOutputLines = 500
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
	if c.History.ListLimit == 0 {
		c.History.ListLimit = 20
	}

	// Backend
	if c.Backend.ModuleName == "" {
		c.Backend.ModuleName = "Module"
	}
	if c.Backend.Externs == nil {
		c.Backend.Externs = DefaultExterns()
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}

	// Highlight
	if c.Highlight.Style == "" {
		c.Highlight.Style = "monokai"
	}
	if c.Highlight.Formatter == "" {
		c.Highlight.Formatter = "terminal256"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", err.Error())
	}
	if c.REPL.MaxOutputLines < 0 {
		return invalid("repl.max_output_lines", "must not be negative")
	}
	if c.History.ListLimit < 0 {
		return invalid("history.list_limit", "must not be negative")
	}

	seen := make(map[string]bool, len(c.Backend.Externs))
	for i, ext := range c.Backend.Externs {
		field := fmt.Sprintf("backend.externs[%d]", i)
		if ext.Name == "" {
			return invalid(field, "name is required")
		}
		if !token.IsIdentifier(ext.Name) {
			return invalid(field, fmt.Sprintf("name %q is not a callable identifier", ext.Name))
		}
		if ext.Params < 0 {
			return invalid(field, "params must not be negative")
		}
		if seen[ext.Name] {
			return invalid(field, "duplicate extern "+ext.Name)
		}
		seen[ext.Name] = true
	}

	return nil
}

func invalid(field, reason string) error {
	return mdwerror.Newf("invalid configuration %s: %s", field, reason).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("field", field)
}

// Encode writes the configuration as "toml" or "yaml"
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "toml", "":
		return toml.NewEncoder(w).Encode(c)
	default:
		return mdwerror.Newf("unsupported config format: %s", format).WithCode(mdwerror.CodeInvalidInput)
	}
}

// LogFilePath returns the log file used by the interactive prompt
func (c *Config) LogFilePath() string {
	if c.General.LogFile != "" {
		return c.General.LogFile
	}
	return filepath.Join(c.General.DataDir, "raft.log")
}
