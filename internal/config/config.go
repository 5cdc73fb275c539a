// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName = "cv-enhancer"

	// DefaultEndpoint is where the enhancement backend listens when run locally.
	DefaultEndpoint = "http://localhost:8000/enhance-cv"

	// DefaultOutputName is the base name of the exported PDF.
	DefaultOutputName = "enhanced-cv"

	// DefaultTheme names the terminal colour theme.
	DefaultTheme = "catppuccin-mocha"
)

// Config holds all configuration values for cv-enhancer.
type Config struct {
	Endpoint      string        `mapstructure:"endpoint" yaml:"endpoint" validate:"required,url"`
	OutputDir     string        `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	OutputName    string        `mapstructure:"output_name" yaml:"output_name"`
	ChromePath    string        `mapstructure:"chrome_path" yaml:"chrome_path,omitempty"`
	RenderTimeout time.Duration `mapstructure:"render_timeout" yaml:"render_timeout" validate:"gt=0"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
	Editor        string        `mapstructure:"editor" yaml:"editor,omitempty"`
	Theme         string        `mapstructure:"theme" yaml:"theme"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Endpoint:      DefaultEndpoint,
		OutputDir:     ".",
		OutputName:    DefaultOutputName,
		RenderTimeout: 60 * time.Second,
		LogLevel:      "info",
		Theme:         DefaultTheme,
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
// Flags are applied by the caller through viper.BindPFlag on the returned Viper.
func Load() (*Config, error) {
	v, err := NewViper()
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// NewViper builds a Viper instance with defaults, env bindings and any config
// files found on disk.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(appName)

	def := Default()
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("output_name", def.OutputName)
	v.SetDefault("chrome_path", "")
	v.SetDefault("render_timeout", def.RenderTimeout)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("editor", "")
	v.SetDefault("theme", def.Theme)

	v.SetEnvPrefix("CV_ENHANCER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{"endpoint", "output_dir", "output_name", "chrome_path", "render_timeout", "log_level", "log_file", "editor", "theme"} {
		if err := v.BindEnv(key, "CV_ENHANCER_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// CHROME_PATH is honoured as a fallback, matching other chromedp tooling.
	if err := v.BindEnv("chrome_path", "CV_ENHANCER_CHROME_PATH", "CHROME_PATH"); err != nil {
		return nil, fmt.Errorf("binding chrome_path env: %w", err)
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	return v, nil
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// OutputPath returns the file the PDF export writes to.
func (c *Config) OutputPath() string {
	name := slug.Make(c.OutputName)
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(c.OutputDir, name+".pdf")
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/cv-enhancer/cv-enhancer.yml or $XDG_CONFIG_HOME/cv-enhancer/cv-enhancer.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, appName+".yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return appName + ".yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
