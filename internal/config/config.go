package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file and default values.
const (
	EnvProject  = "ROUTESCOPE_PROJECT"
	EnvListen   = "ROUTESCOPE_LISTEN"
	EnvLogLevel = "ROUTESCOPE_LOG_LEVEL"
	EnvPort     = "PORT"
)

// Config drives one run. Report selects the output document: "routes" or "openapi".
type Config struct {
	ProjectPath  string `json:"project_path" yaml:"project_path"`
	OutputPath   string `json:"output_path" yaml:"output_path"`
	OutputFormat string `json:"output_format" yaml:"output_format"`
	Report       string `json:"report" yaml:"report"`
	Manifest     string `json:"manifest" yaml:"manifest"`
	ServerURL    string `json:"server_url" yaml:"server_url"`
	Title        string `json:"title" yaml:"title"`
	Version      string `json:"version" yaml:"version"`
	Description  string `json:"description" yaml:"description"`
	ListenAddr   string `json:"listen_addr" yaml:"listen_addr"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	LogJSON      bool   `json:"log_json" yaml:"log_json"`
	Watch        bool   `json:"watch" yaml:"watch"`
	Serve        bool   `json:"serve" yaml:"serve"`
}

func Default() Config {
	return Config{
		ProjectPath:  ".",
		OutputPath:   "routes.json",
		OutputFormat: "json",
		Report:       "routes",
		ServerURL:    "http://localhost:3000",
		Title:        "API Routes",
		Version:      "1.0.0",
		Description:  "Routes discovered from registered route groups and controller sources",
		ListenAddr:   ":8080",
		LogLevel:     "info",
	}
}

// Load reads a JSON or YAML config file over the defaults. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without overriding existing variables.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any set environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvProject)); v != "" {
		c.ProjectPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if strings.HasPrefix(v, ":") {
			c.ListenAddr = v
		} else {
			c.ListenAddr = ":" + v
		}
	}
	// the explicit listen address wins over PORT
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		c.ListenAddr = v
	}
}

func (c Config) Validate() error {
	if c.ProjectPath == "" {
		return fmt.Errorf("project path is required")
	}
	switch c.OutputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", c.OutputFormat)
	}
	switch c.Report {
	case "routes", "openapi":
	default:
		return fmt.Errorf("unsupported report: %s (supported: routes, openapi)", c.Report)
	}
	if c.Serve && c.ListenAddr == "" {
		return fmt.Errorf("listen address is required in serve mode")
	}
	return nil
}
