package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/cv-enhancer/internal/markup"
	"github.com/mark3labs/cv-enhancer/internal/tui"
	"github.com/mark3labs/cv-enhancer/internal/wizard"
	"github.com/spf13/cobra"
)

var enhanceFlags struct {
	job     string
	cv      string
	pdf     bool
	out     string
	preview bool
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Enhance a CV without the interactive UI",
	Long: `Send a job description and a CV to the enhancement service and print the
enhanced CV as HTML.

Use --preview to print a rendered terminal preview instead, and --pdf to also
export the result to a PDF.`,
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceFlags.job, "job", "j", "", "File containing the job description (- for stdin)")
	enhanceCmd.Flags().StringVarP(&enhanceFlags.cv, "cv", "c", "", "File containing the CV (- for stdin)")
	enhanceCmd.Flags().BoolVar(&enhanceFlags.pdf, "pdf", false, "Export the result to PDF")
	enhanceCmd.Flags().StringVarP(&enhanceFlags.out, "out", "o", "", "PDF path (default: <output_dir>/<output_name>.pdf)")
	enhanceCmd.Flags().BoolVar(&enhanceFlags.preview, "preview", false, "Print a rendered preview instead of HTML")
	_ = enhanceCmd.MarkFlagRequired("job")
	_ = enhanceCmd.MarkFlagRequired("cv")
}

func runEnhance(cmd *cobra.Command, args []string) error {
	if enhanceFlags.job == "-" && enhanceFlags.cv == "-" {
		return errors.New("only one of --job and --cv can read from stdin")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	job, err := readInput(cmd.InOrStdin(), enhanceFlags.job)
	if err != nil {
		return err
	}
	cv, err := readInput(cmd.InOrStdin(), enhanceFlags.cv)
	if err != nil {
		return err
	}

	html, err := enhanceOnce(cmd.Context(), newClient(cfg), job, cv)
	if err != nil {
		return err
	}

	out := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
	if enhanceFlags.preview {
		_, _ = fmt.Fprintln(out, tui.RenderPreview(html, 100))
	} else {
		_, _ = fmt.Fprintln(out, markup.Sanitize(html))
	}

	if !enhanceFlags.pdf {
		return nil
	}
	path := enhanceFlags.out
	if path == "" {
		path = cfg.OutputPath()
	}
	written, err := newRenderer(cfg, path).Export(cmd.Context(), html)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "PDF written to: %s\n", written)
	return nil
}

// enhanceOnce drives the wizard through both input steps and the submission
// synchronously, returning the raw result markup.
func enhanceOnce(ctx context.Context, sub wizard.Submitter, job, cv string) (string, error) {
	ctl := wizard.New()

	ctl.SetJobDescription(job)
	if _, err := ctl.Advance(); err != nil {
		return "", err
	}

	ctl.SetCV(cv)
	ticket, err := ctl.Advance()
	if err != nil {
		return "", err
	}

	res := ticket.Execute(ctx, sub)
	ctl.Apply(res)
	if res.Err != nil {
		return "", fmt.Errorf("error processing your request: %w", res.Err)
	}
	return ctl.State().EnhancedResult, nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
