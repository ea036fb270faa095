package docgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrNilResult is returned when no parse result is given.
var ErrNilResult = errors.New("nil parse result")

// HTMLRenderer converts the Markdown reference to HTML.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates a renderer with the GFM table extension enabled.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Render converts markdown to an HTML fragment.
func (r *HTMLRenderer) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Page wraps an HTML fragment in a minimal standalone document.
func Page(title string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
