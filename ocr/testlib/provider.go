package testlib

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/opengs/questionbank/ocr"
)

// Scripted OCR provider for tests. Each worker replays `Progress` events and returns `Text`.
type Provider struct {
	Text     string
	Progress []ocr.Progress
	// Returned from NewWorker
	InitErr error
	// Returned from Recognize
	RecognizeErr error
	// Mime types reported as supported. Everything is supported when empty
	MimeTypes []string
	// If set, Recognize waits until channel is closed or context is done
	Release chan struct{}

	started    atomic.Int32
	terminated atomic.Int32

	lock      sync.Mutex
	images    [][]byte
	languages [][]string
}

func (p *Provider) NewWorker(ctx context.Context, languages []string, observer ocr.Observer) (ocr.Worker, error) {
	p.lock.Lock()
	p.languages = append(p.languages, slices.Clone(languages))
	p.lock.Unlock()

	if p.InitErr != nil {
		return nil, p.InitErr
	}
	p.started.Add(1)
	return &worker{provider: p, observer: observer}, nil
}

func (p *Provider) IsMimeTypeSupported(mimeType string) bool {
	return len(p.MimeTypes) == 0 || slices.Contains(p.MimeTypes, mimeType)
}

// Number of successfully allocated workers
func (p *Provider) Started() int {
	return int(p.started.Load())
}

// Number of terminated workers
func (p *Provider) Terminated() int {
	return int(p.terminated.Load())
}

// Images passed to Recognize in call order
func (p *Provider) Images() [][]byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return slices.Clone(p.images)
}

// Languages passed to NewWorker in call order
func (p *Provider) Languages() [][]string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return slices.Clone(p.languages)
}

type worker struct {
	provider *Provider
	observer ocr.Observer
}

func (w *worker) Recognize(ctx context.Context, image []byte) (string, error) {
	w.provider.lock.Lock()
	w.provider.images = append(w.provider.images, slices.Clone(image))
	w.provider.lock.Unlock()

	for _, progress := range w.provider.Progress {
		if w.observer != nil {
			w.observer(progress)
		}
	}

	if w.provider.Release != nil {
		select {
		case <-w.provider.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if w.provider.RecognizeErr != nil {
		return "", w.provider.RecognizeErr
	}
	return w.provider.Text, nil
}

func (w *worker) Terminate() error {
	w.provider.terminated.Add(1)
	return nil
}

// Builds progress events for the text recognition stage
func Recognizing(fractions ...float64) []ocr.Progress {
	events := make([]ocr.Progress, 0, len(fractions))
	for _, fraction := range fractions {
		events = append(events, ocr.Progress{Stage: ocr.StageRecognizing, Fraction: fraction})
	}
	return events
}
