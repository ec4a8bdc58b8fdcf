package export

import "strings"

// Heading level of a paragraph. Zero means body text
type HeadingLevel int

const (
	HeadingNone HeadingLevel = iota
	Heading1
	Heading2
)

// Paragraph spacing in twentieths of a point
type Spacing struct {
	Before int
	After  int
}

// Piece of text sharing the same formatting
type Run struct {
	Text string
	Bold bool
}

type Paragraph struct {
	Heading HeadingLevel
	Spacing Spacing
	Runs    []Run
}

// Plain text of all runs
func (p Paragraph) Text() string {
	var text strings.Builder
	for _, run := range p.Runs {
		text.WriteString(run.Text)
	}
	return text.String()
}

type Section struct {
	Paragraphs []Paragraph
}

// Structured document handed to serializers
type Document struct {
	Title    string
	Sections []Section
}

// All paragraphs of the document in order
func (d *Document) Paragraphs() []Paragraph {
	var paragraphs []Paragraph
	for _, section := range d.Sections {
		paragraphs = append(paragraphs, section.Paragraphs...)
	}
	return paragraphs
}
