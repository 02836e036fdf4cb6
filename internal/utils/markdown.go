package utils

import (
	"bytes"
	stdhtml "html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// bodyRenderer turns question and answer bodies into HTML. Full bodies keep
// the UGC subset; excerpts are reduced to plain text.
type bodyRenderer struct {
	md    goldmark.Markdown
	body  *bluemonday.Policy
	plain *bluemonday.Policy
}

func newBodyRenderer() *bodyRenderer {
	body := bluemonday.UGCPolicy()
	body.AllowImages()
	body.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	body.AddTargetBlankToFullyQualifiedLinks(true)
	body.RequireNoReferrerOnLinks(true)

	return &bodyRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		body:  body,
		plain: bluemonday.StrictPolicy(),
	}
}

var bodies = newBodyRenderer()

func (r *bodyRenderer) convert(source string) ([]byte, bool) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// RenderMarkdown converts question and answer bodies to sanitised HTML.
func RenderMarkdown(source string) template.HTML {
	out, ok := bodies.convert(source)
	if !ok {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return EnhanceHTMLContent(string(bodies.body.SanitizeBytes(out)))
}

// MarkdownExcerpt returns the first n runes of a body's visible text, for list pages.
func MarkdownExcerpt(source string, n int) string {
	text := source
	if out, ok := bodies.convert(source); ok {
		// StrictPolicy drops tags but leaves entities encoded
		text = stdhtml.UnescapeString(bodies.plain.Sanitize(string(out)))
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
