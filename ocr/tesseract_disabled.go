//go:build !qbank_feature_ocr_tesseract && !test

package ocr

import (
	"context"
	"errors"
)

var ErrTesseractNotCompiled = errors.New("OCR is not possible because binary wasnt compiled with internal tesseract OCR provider")

const FeatureTesseractEnabled = false

type Tesseract struct {
	config TesseractConfig
}

func NewTesseract(config TesseractConfig) *Tesseract {
	return &Tesseract{config: config}
}

func (p *Tesseract) NewWorker(ctx context.Context, languages []string, observer Observer) (Worker, error) {
	return nil, ErrTesseractNotCompiled
}
