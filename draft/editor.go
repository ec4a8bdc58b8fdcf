// Package draft holds the question being edited before it is committed to the bank.
package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/opengs/questionbank/bank"
	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/transcription"
	"golang.org/x/sync/semaphore"
)

// Nothing is staged. Same error the transcription service reports for a missing image
var ErrNoImage = transcription.ErrNoImage
var ErrScanInProgress = errors.New("scan is already in progress")

type State string

const StateIdle State = "IDLE"
const StateScanning State = "SCANNING"

// Recognizes text on staged images
type Transcriber interface {
	Transcribe(ctx context.Context, image *ingest.Handle, onProgress func(uint8)) (string, error)
}

// Consistent copy of the draft
type Snapshot struct {
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Image    *ingest.Handle `json:"-"`
	State    State          `json:"state"`
	Progress uint8          `json:"progress"`
}

type Option func(e *Editor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

func WithIDGenerator(ids bank.IDGenerator) Option {
	return func(e *Editor) {
		e.ids = ids
	}
}

// Single live draft. Commits into the repository it was created with.
type Editor struct {
	transcriber Transcriber
	repository  *bank.Repository
	ids         bank.IDGenerator
	logger      *slog.Logger

	// Only one scan may hold the slot
	scanSlot *semaphore.Weighted

	lock     sync.Mutex
	question string
	answer   string
	image    *ingest.Handle
	state    State
	progress uint8
}

func New(repository *bank.Repository, transcriber Transcriber, options ...Option) *Editor {
	editor := &Editor{
		transcriber: transcriber,
		repository:  repository,
		ids:         bank.NewSequenceIDs(),
		logger:      slog.Default(),
		scanSlot:    semaphore.NewWeighted(1),
		state:       StateIdle,
	}
	for _, option := range options {
		option(editor)
	}
	return editor
}

func (e *Editor) SetQuestion(text string) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.question = text
}

func (e *Editor) SetAnswer(text string) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.answer = text
}

// Stages image, replacing previous one. Running scan keeps working on the image it started with.
func (e *Editor) SetImage(image *ingest.Handle) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.image = image
}

func (e *Editor) RemoveImage() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.state == StateScanning {
		return ErrScanInProgress
	}
	e.image = nil
	return nil
}

func (e *Editor) Snapshot() Snapshot {
	e.lock.Lock()
	defer e.lock.Unlock()
	return Snapshot{
		Question: e.question,
		Answer:   e.answer,
		Image:    e.image,
		State:    e.state,
		Progress: e.progress,
	}
}

func (e *Editor) State() State {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.state
}

// Current scan progress in % from 0 to 100. Always 0 when idle
func (e *Editor) Progress() uint8 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.progress
}

// Turns the draft into a record and appends it to the repository.
// Returns nil record without changes if both question and answer are blank.
func (e *Editor) Commit() (*bank.Record, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	question := strings.TrimSpace(e.question)
	answer := strings.TrimSpace(e.answer)
	if question == "" && answer == "" {
		return nil, nil
	}

	id, err := e.ids.NewID()
	if err != nil {
		return nil, errors.Join(errors.New("failed to generate record id"), err)
	}
	record := bank.Record{
		ID:       id,
		Question: question,
		Answer:   answer,
		Image:    e.image,
	}
	if err := e.repository.Append(record); err != nil {
		return nil, errors.Join(errors.New("failed to append record to repository"), err)
	}

	e.question = ""
	e.answer = ""
	e.image = nil

	e.logger.Debug("question committed", "id", record.ID, "hasImage", record.Image != nil)
	return &record, nil
}
