package tui

import (
	"bytes"
	"strings"

	"charm.land/glamour/v2"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/mark3labs/cv-enhancer/internal/markup"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

// RenderPreview renders the enhanced CV as styled terminal text: sanitized
// markup converted to Markdown and rendered with glamour.
func RenderPreview(html string, width int) string {
	return renderMarkdown(markup.ToMarkdown(html), width)
}

// renderMarkdown renders markdown content using glamour.
// Falls back to plain text wrapping if rendering fails.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wrapText(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return wrapText(content, width)
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}

// highlightHTML returns the sanitized markup with ANSI syntax highlighting.
func highlightHTML(html string) string {
	source := markup.Sanitize(html)

	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}

	style := styles.Get("catppuccin-mocha")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderChanges shows a unified diff from the submitted CV to the text of the
// enhanced result.
func renderChanges(originalCV, html string) string {
	before := normalizeText(originalCV)
	after := normalizeText(markup.PlainText(html))

	diff := udiff.Unified("original-cv", "enhanced-cv", before, after)
	if diff == "" {
		return theme.Current().S().Muted.Render("No textual changes.")
	}

	s := theme.Current().S()
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = s.HintKey.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = s.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = s.DiffInsert.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = s.DiffDelete.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// normalizeText trims trailing spaces per line and ends the text with exactly
// one newline so the diff does not report "no newline at end of file".
func normalizeText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// wrapText wraps plain text at width on word boundaries.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
