// Package transcription extracts question text from staged images with an OCR provider.
package transcription

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/ocr"
)

var ErrRecognition = errors.New("text recognition failed")
var ErrNoImage = errors.New("no image to transcribe")

// Recognized languages: Vietnamese first, English as second language. Not configurable
var DefaultLanguages = []string{"vie", "eng"}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Runs single OCR pass per call on a fresh worker
type Service struct {
	provider  ocr.Provider
	languages []string
	logger    *slog.Logger
}

func New(provider ocr.Provider, options ...Option) *Service {
	service := &Service{
		provider:  provider,
		languages: slices.Clone(DefaultLanguages),
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

func (s *Service) Languages() []string {
	return slices.Clone(s.languages)
}

// Recognizes text on the image. Recognition progress is reported to `onProgress` in % from 0 to 100 and never decreases.
// Returned error matches [ErrRecognition] if OCR failed.
func (s *Service) Transcribe(ctx context.Context, image *ingest.Handle, onProgress func(uint8)) (string, error) {
	if image == nil {
		return "", ErrNoImage
	}

	imageData, err := s.prepareImage(image)
	if err != nil {
		return "", errors.Join(ErrRecognition, errors.New("failed to prepare image data"), err)
	}

	tracker := newProgressTracker(onProgress)
	worker, err := s.provider.NewWorker(ctx, s.languages, tracker.observe)
	if err != nil {
		return "", errors.Join(ErrRecognition, errors.New("failed to initialize OCR worker"), err)
	}
	defer func() {
		if err := worker.Terminate(); err != nil {
			s.logger.Warn("failed to terminate OCR worker", "error", err)
		}
	}()

	text, err := worker.Recognize(ctx, imageData)
	if err != nil {
		return "", errors.Join(ErrRecognition, errors.New("errors while running OCR"), err)
	}

	text = strings.TrimSpace(text)
	s.logger.Debug("image transcribed", "image", image.Name(), "characters", len(text))
	return text, nil
}

func (s *Service) prepareImage(image *ingest.Handle) ([]byte, error) {
	if s.provider.IsMimeTypeSupported(image.MimeType()) {
		return image.Bytes(), nil
	}
	s.logger.Debug("transcoding image for OCR provider", "mimeType", image.MimeType())
	return image.PNG()
}
