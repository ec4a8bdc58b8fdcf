package ocr

import (
	"context"
)

// Name of the OCR processing stage reported with progress
type Stage string

const StageInitializing Stage = "initializing tesseract"
const StageLoadingLanguage Stage = "loading language traineddata"
const StageRecognizing Stage = "recognizing text"

// Progress event emitted by the worker
type Progress struct {
	Stage Stage `json:"status"`
	// Stage completion from 0 to 1
	Fraction float64 `json:"progress"`
}

// Receives progress events. May be called from any goroutine.
type Observer func(progress Progress)

// Provides OCR functionality
type Provider interface {
	// Allocate worker that recognizes specified languages. Worker must be terminated by the caller.
	// Observer may be nil.
	NewWorker(ctx context.Context, languages []string, observer Observer) (Worker, error)
	// Check if this provider supports specific mime type
	IsMimeTypeSupported(mimeType string) bool
}

// Single allocated OCR engine instance
type Worker interface {
	// Get text from image
	Recognize(ctx context.Context, image []byte) (string, error)
	// Release all resources of the worker
	Terminate() error
}

func notify(observer Observer, stage Stage, fraction float64) {
	if observer != nil {
		observer(Progress{Stage: stage, Fraction: fraction})
	}
}
