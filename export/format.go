package export

import (
	"fmt"
	"strings"
)

type Format string

const FormatDOCX Format = "docx"
const FormatHTML Format = "html"
const FormatMarkdown Format = "markdown"

var Formats = []Format{FormatDOCX, FormatHTML, FormatMarkdown}

// Returns serializer for the format name. Empty name selects DOCX
func SerializerFor(format string) (Serializer, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case "", FormatDOCX:
		return NewDOCX(), nil
	case FormatHTML, "htm":
		return NewHTML(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
