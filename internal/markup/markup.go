// Package markup handles the HTML returned by the enhancement service. The
// markup is untrusted: everything rendered or exported goes through Sanitize.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	fenceRe      = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*\\n(.*?)\\n?```\\s*$")
	spaceRe      = regexp.MustCompile(`[ \t\r\n\f]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// cvStyles are the inline CSS properties kept on any element. Language models
// are asked for coloured headers and mixed fonts, so these survive.
var cvStyles = []string{
	"color", "background-color",
	"font-family", "font-size", "font-weight", "font-style",
	"text-align", "text-decoration", "text-transform", "line-height", "letter-spacing",
	"margin", "margin-top", "margin-bottom", "margin-left", "margin-right",
	"padding", "padding-top", "padding-bottom", "padding-left", "padding-right",
	"border", "border-top", "border-bottom", "border-left", "border-right", "border-radius",
	"width", "max-width", "display",
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("header", "footer", "section", "article", "main", "div", "span")
	p.AllowAttrs("class").Globally()
	p.AllowStyles(cvStyles...).Globally()
	return p
}

// Sanitize strips fences, keeps only the body of a full document and removes
// anything not allowed by the CV policy (scripts, handlers, javascript: URLs).
func Sanitize(src string) string {
	body, err := Body(StripFences(src))
	if err != nil {
		body = src
	}
	return strings.TrimSpace(policy.Sanitize(body))
}

// StripFences removes a surrounding Markdown code fence such as ```html ... ```.
func StripFences(src string) string {
	if m := fenceRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return src
}

// Body returns the inner HTML of <body>. Fragments come back unchanged apart
// from normalisation by the HTML parser.
func Body(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("rendering body: %w", err)
	}
	return body, nil
}

// ToMarkdown converts sanitized markup into Markdown for terminal preview.
func ToMarkdown(src string) string {
	return convert(src, false)
}

// PlainText returns the text of the markup with one line per block.
func PlainText(src string) string {
	return convert(src, true)
}

func convert(src string, plain bool) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Sanitize(src)))
	if err != nil {
		return src
	}
	w := &walker{plain: plain}
	w.children(doc.Find("body"))
	return tidy(w.b.String())
}

type walker struct {
	b     strings.Builder
	plain bool
	lists []listState
}

type listState struct {
	ordered bool
	index   int
}

func (w *walker) children(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		w.node(c)
	})
}

func (w *walker) node(s *goquery.Selection) {
	name := goquery.NodeName(s)
	switch name {
	case "#text":
		w.text(s.Text())
	case "#comment", "script", "style", "head", "title":
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.block()
		if !w.plain {
			w.b.WriteString(strings.Repeat("#", int(name[1]-'0')) + " ")
		}
		w.b.WriteString(strings.TrimSpace(collapse(s.Text())))
		w.block()
	case "p", "div", "section", "article", "header", "footer", "main", "blockquote", "table":
		w.block()
		w.children(s)
		w.block()
	case "tr":
		w.line()
		var cells []string
		s.Children().Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(collapse(td.Text())))
		})
		w.b.WriteString(strings.Join(cells, " | "))
		w.line()
	case "br":
		w.b.WriteString("\n")
	case "hr":
		w.block()
		if !w.plain {
			w.b.WriteString("---")
		}
		w.block()
	case "ul", "ol":
		w.lists = append(w.lists, listState{ordered: name == "ol"})
		w.line()
		w.children(s)
		w.lists = w.lists[:len(w.lists)-1]
		w.line()
	case "li":
		w.item(s)
	case "strong", "b":
		w.wrap(s, "**")
	case "em", "i":
		w.wrap(s, "_")
	case "code":
		w.wrap(s, "`")
	case "a":
		href, _ := s.Attr("href")
		text := strings.TrimSpace(collapse(s.Text()))
		if w.plain || href == "" || href == text {
			w.text(text)
			return
		}
		w.b.WriteString("[" + text + "](" + href + ")")
	default:
		w.children(s)
	}
}

func (w *walker) item(s *goquery.Selection) {
	w.line()
	depth := len(w.lists)
	if depth > 0 {
		w.b.WriteString(strings.Repeat("  ", depth-1))
		top := &w.lists[depth-1]
		top.index++
		if top.ordered {
			fmt.Fprintf(&w.b, "%d. ", top.index)
		} else {
			w.b.WriteString("- ")
		}
	} else {
		w.b.WriteString("- ")
	}
	w.children(s)
	w.line()
}

func (w *walker) wrap(s *goquery.Selection, marker string) {
	if w.plain {
		w.children(s)
		return
	}
	text := strings.TrimSpace(collapse(s.Text()))
	if text == "" {
		return
	}
	w.b.WriteString(marker + text + marker)
}

func (w *walker) text(t string) {
	t = collapse(t)
	if strings.TrimSpace(t) == "" {
		if t != "" && !w.atLineStart() && !strings.HasSuffix(w.b.String(), " ") {
			w.b.WriteString(" ")
		}
		return
	}
	if w.atLineStart() {
		t = strings.TrimLeft(t, " ")
	}
	w.b.WriteString(t)
}

func (w *walker) atLineStart() bool {
	s := w.b.String()
	return s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "- ") || strings.HasSuffix(s, ". ")
}

// line ends the current line if it has content.
func (w *walker) line() {
	s := w.b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.b.WriteString("\n")
	}
}

// block separates paragraphs with a blank line.
func (w *walker) block() {
	w.line()
	if s := w.b.String(); s != "" && !strings.HasSuffix(s, "\n\n") {
		w.b.WriteString("\n")
	}
}

func collapse(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
