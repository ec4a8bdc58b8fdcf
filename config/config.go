// Package config loads qbank configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/opengs/questionbank/export"
	"github.com/opengs/questionbank/ocr"
	"gopkg.in/yaml.v3"
)

type OCRProviderName string

const OCRProviderTesseract OCRProviderName = "TESSERACT"
const OCRProviderTesseractServer OCRProviderName = "TESSERACT_SERVER"
const OCRProviderPaddle OCRProviderName = "PADDLE"

var OCRProviders = []OCRProviderName{OCRProviderTesseract, OCRProviderTesseractServer, OCRProviderPaddle}

type Config struct {
	OCR    OCRConfig    `yaml:"ocr"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

type OCRConfig struct {
	Provider        OCRProviderName           `yaml:"provider"`
	Tesseract       ocr.TesseractConfig       `yaml:"tesseract"`
	TesseractServer ocr.TesseractServerConfig `yaml:"tesseractServer"`
	Paddle          ocr.PaddleConfig          `yaml:"paddle"`
}

type ExportConfig struct {
	// One of docx, html, markdown
	Format    string `yaml:"format"`
	OutputDir string `yaml:"outputDir"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `yaml:"level"`
	// text or json
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port uint   `yaml:"port"`
	// Maximum accepted image size in bytes
	MaxImageSize int64 `yaml:"maxImageSize"`
}

func Default() Config {
	return Config{
		OCR: OCRConfig{
			Provider:        OCRProviderTesseract,
			Tesseract:       ocr.DefaultTesseractConfig(),
			TesseractServer: ocr.TesseractServerConfig{BaseURL: "http://127.0.0.1:8080"},
			Paddle:          ocr.DefaultPaddleConfig(),
		},
		Export: ExportConfig{
			Format:    string(export.FormatDOCX),
			OutputDir: ".",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8884,
			MaxImageSize: 32 << 20,
		},
	}
}

// Reads YAML file on top of the default configuration
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Join(errors.New("failed to open config file"), err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Join(errors.New("failed to parse config"), err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if !slices.Contains(OCRProviders, c.OCR.Provider) {
		return fmt.Errorf("unsupported ocr provider: %s", c.OCR.Provider)
	}
	if !slices.Contains(ocr.TesseractModelTypes, c.OCR.Tesseract.ModelType) {
		return fmt.Errorf("tesseract model type is not supported: %s", c.OCR.Tesseract.ModelType)
	}
	if _, err := export.SerializerFor(c.Export.Format); err != nil {
		return err
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	return nil
}

// Builds OCR provider selected in the configuration
func (c OCRConfig) NewProvider() (ocr.Provider, error) {
	switch c.Provider {
	case OCRProviderTesseract:
		return ocr.NewTesseract(c.Tesseract), nil
	case OCRProviderTesseractServer:
		return ocr.NewTesseractServer(c.TesseractServer), nil
	case OCRProviderPaddle:
		return ocr.NewPaddle(c.Paddle), nil
	default:
		return nil, fmt.Errorf("unsupported ocr provider: %s", c.Provider)
	}
}

// Builds logger writing to `w`
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, options)), nil
	}
	return slog.New(slog.NewTextHandler(w, options)), nil
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return level, nil
}
