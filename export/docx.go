package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Writes WordprocessingML (.docx) packages
type DOCX struct{}

func NewDOCX() *DOCX {
	return &DOCX{}
}

func (s *DOCX) Extension() string {
	return "docx"
}

func (s *DOCX) MimeType() string {
	return docxMimeType
}

func (s *DOCX) Serialize(ctx context.Context, document *Document) ([]byte, error) {
	out, err := godocx.NewDocument()
	if err != nil {
		return nil, errors.Join(errors.New("failed to create docx document"), err)
	}

	for _, paragraph := range document.Paragraphs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := addDOCXParagraph(out, paragraph); err != nil {
			return nil, errors.Join(errors.New("failed to write paragraph"), err)
		}
	}

	// godocx saves to a path only
	dir, err := os.MkdirTemp("", "qbank-docx-")
	if err != nil {
		return nil, errors.Join(errors.New("failed to create temporary folder for docx package"), err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "document.docx")
	if err := out.SaveTo(path); err != nil {
		return nil, errors.Join(errors.New("failed to save docx package"), err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(errors.New("failed to read docx package"), err)
	}
	return data, nil
}

func addDOCXParagraph(out *docx.RootDoc, paragraph Paragraph) error {
	if paragraph.Heading != HeadingNone {
		heading, err := out.AddHeading(strings.Join(strings.Fields(paragraph.Text()), " "), uint(paragraph.Heading))
		if err != nil {
			return err
		}
		setDOCXSpacing(heading, paragraph.Spacing)
		return nil
	}

	// Word ignores newlines inside text, so every line becomes its own paragraph
	lines := splitLines(paragraph.Runs)
	for i, line := range lines {
		p := out.AddParagraph("")
		for _, run := range line {
			p.AddText(run.Text).Bold(run.Bold)
		}

		spacing := Spacing{}
		if i == 0 {
			spacing.Before = paragraph.Spacing.Before
		}
		if i == len(lines)-1 {
			spacing.After = paragraph.Spacing.After
		}
		setDOCXSpacing(p, spacing)
	}
	return nil
}

func setDOCXSpacing(p *docx.Paragraph, spacing Spacing) {
	if spacing == (Spacing{}) {
		return
	}
	ct := p.GetCT()
	if ct.Property == nil {
		ct.Property = &ctypes.ParagraphProp{}
	}
	ct.Property.Spacing = ctypes.NewParagraphSpacing(uint64(spacing.Before), uint64(spacing.After))
}

// Splits runs on newlines. Formatting of each run is kept on every line it spans.
func splitLines(runs []Run) [][]Run {
	lines := [][]Run{nil}
	for _, run := range runs {
		for i, text := range strings.Split(strings.ReplaceAll(run.Text, "\r\n", "\n"), "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if text != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], Run{Text: text, Bold: run.Bold})
			}
		}
	}
	return lines
}
