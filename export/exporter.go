// Package export turns the question bank into a downloadable document.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/opengs/questionbank/bank"
)

var ErrEmptyRepository = errors.New("there are no questions to export")

const (
	Title               = "NGÂN HÀNG ĐỀ THI"
	CountLabel          = "Tổng số câu hỏi: "
	QuestionLabel       = "Câu"
	AnswerLabel         = "Đáp án: "
	QuestionPlaceholder = "(Chưa có câu hỏi)"
	AnswerPlaceholder   = "(Chưa có đáp án)"
	FilenamePrefix      = "NganHangDeThi_"
)

// Converts document tree into the binary file
type Serializer interface {
	Serialize(ctx context.Context, document *Document) ([]byte, error)
	// File extension without dot
	Extension() string
	MimeType() string
}

// Serialized document ready to be saved
type Artifact struct {
	Filename string
	MimeType string
	Data     []byte
}

// Writes artifact into the directory and returns full path to the file
func (a *Artifact) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Join(errors.New("failed to create output directory"), err)
	}
	fullPath := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(fullPath, a.Data, 0644); err != nil {
		return "", errors.Join(errors.New("failed to write exported document"), err)
	}
	return fullPath, nil
}

type Option func(e *Exporter)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// Overrides clock used to put export date into the file name
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

type Exporter struct {
	serializer Serializer
	now        func() time.Time
	logger     *slog.Logger
}

func New(serializer Serializer, options ...Option) *Exporter {
	exporter := &Exporter{
		serializer: serializer,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(exporter)
	}
	return exporter
}

// Serializes records. Fails with [ErrEmptyRepository] without calling serializer if there are no records.
func (e *Exporter) Export(ctx context.Context, records []bank.Record) (*Artifact, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRepository
	}

	data, err := e.serializer.Serialize(ctx, Build(records))
	if err != nil {
		return nil, errors.Join(errors.New("failed to serialize document"), err)
	}

	artifact := &Artifact{
		Filename: Filename(e.now(), e.serializer.Extension()),
		MimeType: e.serializer.MimeType(),
		Data:     data,
	}
	e.logger.Info("question bank exported", "questions", len(records), "file", artifact.Filename, "size", len(data))
	return artifact, nil
}

// Suggested file name with the export date, for example `NganHangDeThi_2024-05-01.docx`
func Filename(now time.Time, extension string) string {
	return FilenamePrefix + now.UTC().Format(time.DateOnly) + "." + extension
}

// Maps records into document. Questions are numbered from 1 in the given order.
func Build(records []bank.Record) *Document {
	paragraphs := make([]Paragraph, 0, 2+len(records)*3)
	paragraphs = append(paragraphs,
		Paragraph{Heading: Heading1, Runs: []Run{{Text: Title}}},
		Paragraph{Spacing: Spacing{After: 400}, Runs: []Run{{Text: fmt.Sprintf("%s%d", CountLabel, len(records))}}},
	)

	for index, record := range records {
		question := record.Question
		if question == "" {
			question = QuestionPlaceholder
		}
		answer := record.Answer
		if answer == "" {
			answer = AnswerPlaceholder
		}

		paragraphs = append(paragraphs,
			Paragraph{
				Heading: Heading2,
				Spacing: Spacing{Before: 400, After: 200},
				Runs:    []Run{{Text: fmt.Sprintf("%s %d:", QuestionLabel, index+1)}},
			},
			Paragraph{
				Spacing: Spacing{After: 200},
				Runs:    []Run{{Text: question, Bold: true}},
			},
			Paragraph{
				Spacing: Spacing{After: 400},
				Runs:    []Run{{Text: AnswerLabel, Bold: true}, {Text: answer}},
			},
		)
	}

	return &Document{
		Title:    Title,
		Sections: []Section{{Paragraphs: paragraphs}},
	}
}
