//go:build test

package ocr

import (
	"testing"
)

// Returns tesseract provider. Requires tesseract and language models installed on the machine.
func NewTestingOCRProvider(t *testing.T) Provider {
	t.Helper()

	config := DefaultTesseractConfig()
	config.ModelsFolder = t.TempDir()
	return NewTesseract(config)
}
