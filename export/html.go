package export

import (
	"bytes"
	"context"
	"errors"
	"html"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Writes document as standalone HTML page. Document is rendered through Markdown with goldmark.
type HTML struct {
	markdown goldmark.Markdown
}

func NewHTML() *HTML {
	return &HTML{
		markdown: goldmark.New(goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps())),
	}
}

func (s *HTML) Extension() string {
	return "html"
}

func (s *HTML) MimeType() string {
	return "text/html; charset=utf-8"
}

func (s *HTML) Serialize(ctx context.Context, document *Document) ([]byte, error) {
	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(renderMarkdown(document)), &body); err != nil {
		return nil, errors.Join(errors.New("failed to render markdown"), err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	out.WriteString(html.EscapeString(document.Title))
	out.WriteString("</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
