package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opengs/questionbank/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, "docx", config.Export.Format)
}

func TestParseOverridesDefaults(t *testing.T) {
	config, err := Parse(strings.NewReader(`
ocr:
  provider: PADDLE
  paddle:
    baseURL: http://ocr.local:9000
export:
  format: html
  outputDir: /tmp/out
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, OCRProviderPaddle, config.OCR.Provider)
	assert.Equal(t, "http://ocr.local:9000", config.OCR.Paddle.BaseURL)
	assert.Equal(t, "html", config.Export.Format)
	assert.Equal(t, uint(8884), config.Server.Port)
	assert.Equal(t, ocr.TesseractModelNormal, config.OCR.Tesseract.ModelType)

	provider, err := config.OCR.NewProvider()
	require.NoError(t, err)
	assert.IsType(t, &ocr.Paddle{}, provider)

	var out bytes.Buffer
	logger, err := config.Log.NewLogger(&out)
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, out.String(), `"msg":"hello"`)
}

func TestParseEmpty(t *testing.T) {
	config, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, input := range []string{
		"ocr:\n  provider: GOOGLE\n",
		"ocr:\n  languages: []\n",
		"ocr:\n  tesseract:\n    modelType: HUGE\n",
		"export:\n  format: pdf\n",
		"log:\n  level: loud\n",
		"unknown: true\n",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestParseRejectsLanguages(t *testing.T) {
	// recognition languages are fixed
	_, err := Parse(strings.NewReader("ocr:\n  languages: [eng]\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: markdown\n"), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", config.Export.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
