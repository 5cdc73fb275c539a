package main

import (
	"fmt"

	"github.com/mark3labs/cv-enhancer/internal/config"
	"github.com/mark3labs/cv-enhancer/internal/enhance"
	"github.com/mark3labs/cv-enhancer/internal/export"
	"github.com/mark3labs/cv-enhancer/internal/logger"
	"github.com/spf13/cobra"
)

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"endpoint":    "endpoint",
	"output-dir":  "output_dir",
	"chrome-path": "chrome_path",
	"log-level":   "log_level",
	"log-file":    "log_file",
}

func bindConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("endpoint", "", "Enhancement service URL (default: "+config.DefaultEndpoint+")")
	f.String("output-dir", "", "Directory for the exported PDF (default: current directory)")
	f.String("chrome-path", "", "Chrome/Chromium binary used for PDF export")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("log-file", "", "Write logs to this file")
}

// loadConfig resolves configuration with flags taking precedence and applies
// the logging settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	for flag, key := range flagKeys {
		pf := cmd.Flags().Lookup(flag)
		if pf == nil {
			continue
		}
		if err := v.BindPFlag(key, pf); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	logger.Debug("Config loaded: endpoint=%s output=%s", cfg.Endpoint, cfg.OutputPath())
	return cfg, nil
}

func newClient(cfg *config.Config) *enhance.Client {
	c := enhance.NewClient(cfg.Endpoint)
	logger.Info("Using enhancement service at %s", c.Endpoint())
	return c
}

// setupHint suggests running setup when no config file exists.
func setupHint() string {
	if config.Exists() {
		return ""
	}
	return "No config file found, using defaults. Run 'cv-enhancer setup' to create one."
}

func newRenderer(cfg *config.Config, outputPath string) *export.Renderer {
	chrome := export.NewChrome(cfg.ChromePath, cfg.RenderTimeout)
	return export.NewRenderer(chrome, chrome, outputPath)
}
