package draft

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Handle of the running scan
type Scan struct {
	progressCh     chan uint8
	lastCompletion atomic.Uint32
	resultText     string
	resultError    error
	resultWaiter   sync.WaitGroup

	// set under editor lock when the progress channel is closed
	finished bool
}

// Receives updates with % completion from 0 to 100. Closed when scan finishes.
// If noone reads from chanel, scan is not blocked. Chanel may not contain latest information if it is not readed fast.
func (s *Scan) Updates() <-chan uint8 {
	return s.progressCh
}

// Latest reported completion in % from 0 to 100
func (s *Scan) Completion() uint8 {
	return uint8(s.lastCompletion.Load())
}

// Waits until scan finishes. Text is already written to the draft when error is nil.
func (s *Scan) Wait() (string, error) {
	s.resultWaiter.Wait()
	return s.resultText, s.resultError
}

// Starts recognition of the staged image in the background
func (e *Editor) StartScan(ctx context.Context) (*Scan, error) {
	e.lock.Lock()
	if e.image == nil {
		e.lock.Unlock()
		return nil, ErrNoImage
	}
	if !e.scanSlot.TryAcquire(1) {
		e.lock.Unlock()
		return nil, ErrScanInProgress
	}
	image := e.image
	e.state = StateScanning
	e.progress = 0
	e.lock.Unlock()

	scan := &Scan{progressCh: make(chan uint8, 1)}
	scan.resultWaiter.Add(1)

	go func() {
		defer scan.resultWaiter.Done()

		text, err := e.transcriber.Transcribe(ctx, image, func(progress uint8) {
			e.lock.Lock()
			defer e.lock.Unlock()
			// observers may fire after recognition returned
			if scan.finished {
				return
			}
			e.progress = progress

			scan.lastCompletion.Store(uint32(progress))
			select {
			case scan.progressCh <- progress:
			default:
			}
		})

		e.lock.Lock()
		if err == nil {
			e.question = text
		}
		e.state = StateIdle
		e.progress = 0
		scan.finished = true
		close(scan.progressCh)
		e.scanSlot.Release(1)
		e.lock.Unlock()

		if err != nil {
			e.logger.Error("failed to scan image", "image", image.Name(), "error", err)
		}
		scan.resultText, scan.resultError = text, err
	}()

	return scan, nil
}

// Runs scan and waits for the result
func (e *Editor) Scan(ctx context.Context) (string, error) {
	scan, err := e.StartScan(ctx)
	if err != nil {
		return "", err
	}
	return scan.Wait()
}

// Checks whether error is a rejected scan request rather than recognition failure
func IsRejected(err error) bool {
	return errors.Is(err, ErrNoImage) || errors.Is(err, ErrScanInProgress)
}
