package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer previews converted documents by rendering their Markdown body back
// into HTML. The renderer is stateless so callers can reuse a single instance
// without additional locking.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer constructs a goldmark-backed renderer with GFM tables and
// strikethrough enabled, matching the structures html-to-markdown emits.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts a Markdown body into HTML.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
