package transcription

import (
	"math"
	"sync"

	"github.com/opengs/questionbank/ocr"
)

// Converts worker progress events into non-decreasing percentages of the text recognition stage
type progressTracker struct {
	lock     sync.Mutex
	sent     bool
	last     uint8
	callback func(uint8)
}

func newProgressTracker(callback func(uint8)) *progressTracker {
	return &progressTracker{callback: callback}
}

func (t *progressTracker) observe(progress ocr.Progress) {
	if progress.Stage != ocr.StageRecognizing || t.callback == nil {
		return
	}

	percent := toPercent(progress.Fraction)

	t.lock.Lock()
	defer t.lock.Unlock()
	if t.sent && percent <= t.last {
		return
	}
	t.sent = true
	t.last = percent
	t.callback(percent)
}

func toPercent(fraction float64) uint8 {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 100
	}
	return uint8(math.Round(fraction * 100))
}
