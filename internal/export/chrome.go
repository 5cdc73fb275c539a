package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mark3labs/cv-enhancer/internal/logger"
)

const mmPerInch = 25.4

// A4 at 96 dpi, so the captured region matches what the page would show.
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// Chrome rasterizes and composes with a headless Chrome driven over the
// DevTools protocol. It satisfies both Rasterizer and Composer.
type Chrome struct {
	// ExecPath overrides the browser binary. Empty uses chromedp's lookup.
	ExecPath string
	// Timeout bounds each browser session.
	Timeout time.Duration
}

// NewChrome creates a Chrome backend.
func NewChrome(execPath string, timeout time.Duration) *Chrome {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Chrome{ExecPath: execPath, Timeout: timeout}
}

// Rasterize loads document and captures the element with the given id.
func (c *Chrome) Rasterize(ctx context.Context, document, elementID string) ([]byte, error) {
	var (
		nodes []*cdp.Node
		png   []byte
	)
	selector := "#" + elementID

	err := c.withPage(ctx, document, func(ctx context.Context) error {
		err := chromedp.Run(ctx,
			chromedp.EmulateViewport(viewportWidth, viewportHeight),
			chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			return ErrElementNotFound
		}
		return chromedp.Run(ctx, chromedp.Screenshot(selector, &png, chromedp.ByQuery, chromedp.NodeVisible))
	})
	if err != nil {
		return nil, err
	}
	return png, nil
}

// Compose prints a single page with the bitmap placed at layout.
func (c *Chrome) Compose(ctx context.Context, png []byte, layout Layout) ([]byte, error) {
	var pdf []byte

	err := c.withPage(ctx, pageDocument(png, layout), func(ctx context.Context) error {
		return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(layout.Page.WidthMM / mmPerInch).
				WithPaperHeight(layout.Page.HeightMM / mmPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPageRanges("1").
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}))
	})
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// withPage starts a browser, opens document from a temporary file and runs fn.
func (c *Chrome) withPage(ctx context.Context, document string, fn func(context.Context) error) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "cv-enhancer-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(document), 0o644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	logger.Debug("Loading %s in headless Chrome", htmlPath)
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("loading page: %w", err)
	}

	return fn(browserCtx)
}

// pageDocument lays the bitmap out on a single page sized by CSS.
func pageDocument(png []byte, layout Layout) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: %.2fmm %.2fmm; margin: 0; }
  html, body { margin: 0; padding: 0; width: %.2fmm; height: %.2fmm; overflow: hidden; }
  img { position: absolute; left: %.3fmm; top: %.3fmm; width: %.3fmm; height: %.3fmm; }
</style>
</head>
<body><img src="data:image/png;base64,%s" alt=""></body>
</html>`,
		layout.Page.WidthMM, layout.Page.HeightMM,
		layout.Page.WidthMM, layout.Page.HeightMM,
		layout.X, layout.Y, layout.Width, layout.Height,
		base64.StdEncoding.EncodeToString(png),
	)
}
