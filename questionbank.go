// Package questionbank builds a bank of question and answer pairs from typed text and
// scanned images, and exports it as a document.
package questionbank

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opengs/questionbank/bank"
	"github.com/opengs/questionbank/draft"
	"github.com/opengs/questionbank/export"
	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/ocr"
	"github.com/opengs/questionbank/transcription"
)

type Config struct {
	// Used to recognize text on staged images. Required
	OCRProvider ocr.Provider
	// Document format used by [Session.Export]. By default DOCX
	Serializer export.Serializer
	// Maximum accepted image size in bytes. By default [ingest.DefaultMaxSize]
	MaxImageSize int64
	Logger       *slog.Logger
}

// State of one editing session. Nothing is persisted after the session ends.
type Session struct {
	Repository *bank.Repository
	Draft      *draft.Editor
	Ingestor   *ingest.Ingestor
	Exporter   *export.Exporter

	logger *slog.Logger
}

func New(config *Config) (*Session, error) {
	if config.OCRProvider == nil {
		return nil, errors.New("OCR provider is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transcriptionOptions := []transcription.Option{transcription.WithLogger(logger.With("component", "transcription"))}

	ingestOptions := []ingest.Option{ingest.WithLogger(logger.With("component", "ingest"))}
	if config.MaxImageSize > 0 {
		ingestOptions = append(ingestOptions, ingest.WithMaxSize(config.MaxImageSize))
	}

	serializer := config.Serializer
	if serializer == nil {
		serializer = export.NewDOCX()
	}

	repository := bank.NewRepository()
	return &Session{
		Repository: repository,
		Draft:      draft.New(repository, transcription.New(config.OCRProvider, transcriptionOptions...), draft.WithLogger(logger.With("component", "draft"))),
		Ingestor:   ingest.New(ingestOptions...),
		Exporter:   export.New(serializer, export.WithLogger(logger.With("component", "export"))),
		logger:     logger,
	}, nil
}

// Validates image and stages it in the draft. Draft is not changed if the file is rejected.
func (s *Session) Ingest(file ingest.File) (*ingest.Handle, error) {
	handle, err := s.Ingestor.Ingest(file)
	if err != nil {
		return nil, err
	}
	s.Draft.SetImage(handle)
	return handle, nil
}

// Records matching the query in repository order
func (s *Session) Search(query string) []bank.Record {
	return bank.Filter(s.Repository.All(), query)
}

func (s *Session) Delete(id string) bool {
	return s.Repository.DeleteByID(id)
}

// Exports all records. Fails with [export.ErrEmptyRepository] if there is nothing to export.
func (s *Session) Export(ctx context.Context) (*export.Artifact, error) {
	return s.Exporter.Export(ctx, s.Repository.All())
}

func (s *Session) Logger() *slog.Logger {
	return s.logger
}
