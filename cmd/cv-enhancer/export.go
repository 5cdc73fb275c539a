package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportFlags struct {
	in  string
	out string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an enhanced CV (HTML) to PDF",
	Long: `Render a previously saved enhanced CV to a single-page A4 PDF using a
headless Chrome.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.in, "in", "i", "", "HTML file to export (- for stdin)")
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "PDF path (default: <output_dir>/<output_name>.pdf)")
	_ = exportCmd.MarkFlagRequired("in")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	html, err := readInput(cmd.InOrStdin(), exportFlags.in)
	if err != nil {
		return err
	}

	path := exportFlags.out
	if path == "" {
		path = cfg.OutputPath()
	}

	written, err := newRenderer(cfg, path).Export(cmd.Context(), html)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to: %s\n", written)
	return nil
}
