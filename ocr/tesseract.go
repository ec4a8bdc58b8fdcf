package ocr

import (
	"path"
	"slices"
)

// Model type used by Tesseract
type TesseractModelType string

// The fastest available model with low accuracy
const TesseractModelFast TesseractModelType = "FAST"

// Model that runs by default in tesseract instances
const TesseractModelNormal TesseractModelType = "NORMAL"

// Model with best quality. Requires more processing power
const TesseractModelBestQuality TesseractModelType = "BEST_QUALITY"

var TesseractModelTypes = []TesseractModelType{TesseractModelFast, TesseractModelNormal, TesseractModelBestQuality}

// Configuration for initializing Tesseract OCR provider
type TesseractConfig struct {
	// Model to use while running tesseract. Default is `TesseractModelNormal`. Works only if `LoadCustomModels` option is set to True.
	ModelType TesseractModelType `json:"modelType" yaml:"modelType"`
	// Load latest models from internet. If this is not selected, you have to manually install additional tesseract packages with models for requested languages.
	LoadCustomModels bool `json:"loadCustomModels" yaml:"loadCustomModels"`
	// On worker startup, tesseract will download missing models and save them to specified location. Default is `./data/ocr/tesseract`
	ModelsFolder string `json:"modelsFolder" yaml:"modelsFolder"`
	// Variable to pass on tesseract initialization. For example you can pass {"load_system_dawg":"0"} to disable loading words list from the system
	Variables map[string]string `json:"variables" yaml:"variables"`
	// Image formats supported by tesseract. Images of other formats are transcoded to PNG before recognition.
	// Check supported formats here `https://tesseract-ocr.github.io/tessdoc/InputFormats.html`
	//
	// Default value is ["image/png", "image/jpeg", "image/gif", "image/webp"].
	// Tesseract doesnt support compressed "image/bmp" image type. So its better to transcode it to PNG.
	SupportedImageFormats []string `json:"supportedImageFormats" yaml:"supportedImageFormats"`
}

func DefaultTesseractConfig() TesseractConfig {
	return TesseractConfig{
		ModelType:        TesseractModelNormal,
		LoadCustomModels: false,
		ModelsFolder:     path.Join("data", "ocr", "tesseract"),
		Variables: map[string]string{
			"load_system_dawg":  "0",
			"load_freq_dawg":    "0",
			"load_punc_dawg":    "0",
			"load_number_dawg":  "0",
			"load_unambig_dawg": "0",
			"load_bigram_dawg":  "0",
		},
		SupportedImageFormats: []string{"image/png", "image/jpeg", "image/gif", "image/webp"},
	}
}

func (p *Tesseract) IsMimeTypeSupported(mimeType string) bool {
	return slices.Contains(p.config.SupportedImageFormats, mimeType)
}
