package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DetectorMode selects how tool intent is detected in model output
type DetectorMode string

const (
	// DetectorSubstring treats any mention of a tool name as a request
	DetectorSubstring DetectorMode = "substring"
	// DetectorTagged expects TOOL_REQUEST:/PARAMETERS: marker lines
	DetectorTagged DetectorMode = "tagged"
)

// Config represents the complete mcpchat configuration
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	// Detector selects the tool-intent detection strategy.
	// Defaults to "substring" when unset.
	Detector DetectorMode `yaml:"detector"`
}

// BackendConfig describes the language-model backend
type BackendConfig struct {
	BaseURL string `yaml:"base_url"` // Empty means the default OpenAI endpoint
	APIKey  string `yaml:"api_key"`  // Supports ${VAR} expansion
	Model   string `yaml:"model"`
	Seed    int    `yaml:"seed"` // Base seed for reproducible generations
}

// ServerConfig defines the MCP server to spawn and connect to
type ServerConfig struct {
	Name    string            `yaml:"name"`    // Identifier used in logs
	Command string            `yaml:"command"` // Executable to run
	Args    []string          `yaml:"args"`    // Command arguments
	Env     map[string]string `yaml:"env"`     // Environment variables with ${VAR} support
}

// Load reads and parses the YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config with fallback to default locations
// Checks: ./mcpchat.yaml, ./configs/mcpchat.yaml, ~/.config/mcpchat/mcpchat.yaml, /etc/mcpchat/mcpchat.yaml
func LoadWithDefaults() (*Config, error) {
	locations := []string{
		"./mcpchat.yaml",
		"./configs/mcpchat.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "mcpchat", "mcpchat.yaml"))
	}

	locations = append(locations, "/etc/mcpchat/mcpchat.yaml")

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return Load(loc)
		}
	}

	// No config found - return defaults (not an error, flags can fill the rest)
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Detector == "" {
		c.Detector = DetectorSubstring
	}
	if c.Backend.Model == "" {
		c.Backend.Model = "gpt-4-turbo"
	}
	if c.Backend.Seed == 0 {
		c.Backend.Seed = 42
	}
}

// Validate checks config correctness
func (c *Config) Validate() error {
	if c.Detector != DetectorSubstring && c.Detector != DetectorTagged {
		return fmt.Errorf("unsupported detector mode: %s (must be 'substring' or 'tagged')", c.Detector)
	}

	if c.Server.Command != "" {
		if err := c.Server.Validate(); err != nil {
			return fmt.Errorf("server %s: %w", c.Server.Name, err)
		}
	}

	return nil
}

// Validate checks the server config
func (s *ServerConfig) Validate() error {
	if s.Command == "" {
		return fmt.Errorf("command is required")
	}

	if s.Name == "" {
		return nil // Name is optional, falls back to the command basename
	}

	// Server names show up inside prompts and logs; keep them plain
	for _, ch := range s.Name {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '-') {
			return fmt.Errorf("server name '%s' contains invalid character '%c' (only alphanumeric, underscore, and hyphen allowed)", s.Name, ch)
		}
	}

	return nil
}

// ExpandSecrets applies ${VAR} expansion to every field that may carry one
func (c *Config) ExpandSecrets() {
	c.Backend.APIKey = ExpandEnv(c.Backend.APIKey)
	c.Backend.BaseURL = ExpandEnv(c.Backend.BaseURL)
	c.Server.Env = ExpandEnvMap(c.Server.Env)
}
