package export

import (
	"context"
	"strings"
)

// Writes document as CommonMark text
type Markdown struct{}

func NewMarkdown() *Markdown {
	return &Markdown{}
}

func (s *Markdown) Extension() string {
	return "md"
}

func (s *Markdown) MimeType() string {
	return "text/markdown; charset=utf-8"
}

func (s *Markdown) Serialize(ctx context.Context, document *Document) ([]byte, error) {
	return []byte(renderMarkdown(document)), nil
}

func renderMarkdown(document *Document) string {
	var out strings.Builder
	for _, paragraph := range document.Paragraphs() {
		switch paragraph.Heading {
		case Heading1:
			out.WriteString("# ")
		case Heading2:
			out.WriteString("## ")
		}

		var text strings.Builder
		for _, run := range paragraph.Runs {
			text.WriteString(markdownRun(run, paragraph.Heading != HeadingNone))
		}
		line := text.String()
		if paragraph.Heading != HeadingNone {
			// headings are single line
			line = strings.Join(strings.Fields(line), " ")
		}
		out.WriteString(line)
		out.WriteString("\n\n")
	}
	return out.String()
}

func markdownRun(run Run, heading bool) string {
	lines := strings.Split(strings.ReplaceAll(run.Text, "\r\n", "\n"), "\n")
	formatted := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// blank lines would split the paragraph
			continue
		}
		escaped := escapeMarkdown(trimmed)
		if run.Bold && !heading {
			escaped = "**" + escaped + "**"
		}
		formatted = append(formatted, escaped)
	}

	text := strings.Join(formatted, "\n")
	if len(formatted) > 0 && strings.HasSuffix(run.Text, " ") {
		text += " "
	}
	return text
}

func escapeMarkdown(text string) string {
	var out strings.Builder
	for _, r := range text {
		if strings.ContainsRune("\\`*_{}[]()#+-.!|<>~=&", r) {
			out.WriteRune('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}
