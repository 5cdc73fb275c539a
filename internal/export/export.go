// Package export turns the enhanced CV into a single-page PDF: the result
// region is rasterized to a PNG, fitted to the page and printed.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"image"
	_ "image/png" // PNG decoder for DecodeConfig
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/cv-enhancer/internal/logger"
	"github.com/mark3labs/cv-enhancer/internal/markup"
)

// ElementID identifies the region holding the rendered result.
const ElementID = "enhanced-cv-content"

// Rasterizer renders a page and captures one element as a PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, document, elementID string) ([]byte, error)
}

// Composer places a PNG on a page according to a Layout and returns PDF bytes.
type Composer interface {
	Compose(ctx context.Context, png []byte, layout Layout) ([]byte, error)
}

// Renderer exports results to a fixed output path.
type Renderer struct {
	rasterizer Rasterizer
	composer   Composer
	outputPath string
	page       PageSize
	topMargin  float64
}

// NewRenderer creates a renderer writing to outputPath on A4.
func NewRenderer(r Rasterizer, c Composer, outputPath string) *Renderer {
	return &Renderer{
		rasterizer: r,
		composer:   c,
		outputPath: outputPath,
		page:       A4,
		topMargin:  DefaultTopMarginMM,
	}
}

// OutputPath returns where Export writes.
func (r *Renderer) OutputPath() string {
	return r.outputPath
}

// Export writes the PDF for the given result markup and returns its path.
// Nothing is written unless every step succeeds.
func (r *Renderer) Export(ctx context.Context, result string) (string, error) {
	clean := markup.Sanitize(result)
	if strings.TrimSpace(clean) == "" {
		return "", r.fail("prepare", ErrEmptyResult)
	}

	logger.Debug("Rasterizing #%s (%d bytes of markup)", ElementID, len(clean))
	png, err := r.rasterizer.Rasterize(ctx, Document(clean), ElementID)
	if err != nil {
		return "", r.fail("rasterize", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return "", r.fail("rasterize", fmt.Errorf("decoding bitmap: %w", err))
	}

	layout, err := ComputeLayout(r.page, cfg.Width, cfg.Height, r.topMargin)
	if err != nil {
		return "", r.fail("layout", err)
	}
	logger.Debug("Bitmap %dx%d placed at (%.1f, %.1f) mm, scale %.4f",
		cfg.Width, cfg.Height, layout.X, layout.Y, layout.Scale)

	pdf, err := r.composer.Compose(ctx, png, layout)
	if err != nil {
		return "", r.fail("compose", err)
	}

	if dir := filepath.Dir(r.outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", r.fail("write", err)
		}
	}
	if err := os.WriteFile(r.outputPath, pdf, 0644); err != nil {
		return "", r.fail("write", err)
	}

	logger.Info("Exported enhanced CV to %s (%d bytes)", r.outputPath, len(pdf))
	return r.outputPath, nil
}

func (r *Renderer) fail(op string, err error) error {
	rerr := &RenderError{Op: op, Err: err}
	logger.Warn("PDF export failed: %v", rerr)
	return rerr
}

// Document wraps sanitized markup in a standalone page whose result region
// carries ElementID.
func Document(body string) string {
	return `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>` + html.EscapeString("Enhanced CV") + `</title>
<style>
  body { margin: 0; background: #ffffff; font-family: "Helvetica Neue", Arial, sans-serif; }
  #` + ElementID + ` { padding: 24px; color: #212121; line-height: 1.4; }
</style>
</head>
<body>
<div id="` + ElementID + `">
` + body + `
</div>
</body>
</html>`
}
