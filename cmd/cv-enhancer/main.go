package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/mark3labs/cv-enhancer/internal/logger"
	"github.com/mark3labs/cv-enhancer/internal/tui"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ █ █   █▀▀ █▄ █ █ █ ▄▀█ █▄ █ █▀▀ █▀▀ █▀█"
	logoText2 = "█▄▄ ▀▄▀   ██▄ █ ▀█ █▀█ █▀█ █ ▀█ █▄▄ ██▄ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	// A missing .env is normal
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cv-enhancer",
	Short: "Tailor a CV to a job description and export it as PDF",
	RunE:  runTUI,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.Gradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.Gradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

cv-enhancer walks you through three steps: paste the job description, paste
your CV, and review the enhanced CV returned by the enhancement service.
The result can be previewed in the terminal and exported as a single-page
A4 PDF.`

	bindConfigFlags(rootCmd)

	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(setupCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if hint := setupHint(); hint != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}

	return tui.Run(cmd.Context(), cfg, tui.Deps{
		Submitter: newClient(cfg),
		Exporter:  newRenderer(cfg, cfg.OutputPath()),
	})
}
