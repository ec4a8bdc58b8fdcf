//go:build test

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTesseractWorkerLifecycle(t *testing.T) {
	provider := NewTestingOCRProvider(t)

	var stages []Stage
	worker, err := provider.NewWorker(t.Context(), []string{"eng"}, func(progress Progress) {
		stages = append(stages, progress.Stage)
	})
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(10, 10, color.Gray{Y: 0})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	_, err = worker.Recognize(t.Context(), buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, worker.Terminate())

	require.Contains(t, stages, StageInitializing)
	require.Contains(t, stages, StageRecognizing)
}

func TestTesseractSupportedMimeTypes(t *testing.T) {
	provider := NewTesseract(DefaultTesseractConfig())
	require.True(t, provider.IsMimeTypeSupported("image/png"))
	require.False(t, provider.IsMimeTypeSupported("image/bmp"))
}
