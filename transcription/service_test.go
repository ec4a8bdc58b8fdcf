package transcription

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/ocr"
	"github.com/opengs/questionbank/ocr/testlib"
	testdata "github.com/opengs/questionbank/test_data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stage(t *testing.T, mimeType string, data []byte) *ingest.Handle {
	t.Helper()
	handle, err := ingest.New().Ingest(ingest.File{Name: "scan", MimeType: mimeType, Content: bytes.NewReader(data)})
	require.NoError(t, err)
	return handle
}

func TestTranscribeReturnsTrimmedText(t *testing.T) {
	provider := &testlib.Provider{
		Text:     "\n  What is 2+2?  \n",
		Progress: testlib.Recognizing(0.1, 0.55, 1),
	}
	service := New(provider)

	var progress []uint8
	text, err := service.Transcribe(t.Context(), stage(t, ingest.MimeTypePNG, testdata.PNG()), func(p uint8) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, "What is 2+2?", text)
	assert.Equal(t, []uint8{10, 55, 100}, progress)
	assert.Equal(t, [][]string{{"vie", "eng"}}, provider.Languages())
	assert.Equal(t, 1, provider.Terminated())
}

func TestTranscribeIgnoresOtherStagesAndRegressions(t *testing.T) {
	provider := &testlib.Provider{
		Text: "text",
		Progress: []ocr.Progress{
			{Stage: ocr.StageInitializing, Fraction: 0.5},
			{Stage: ocr.StageRecognizing, Fraction: 0.3},
			{Stage: ocr.StageLoadingLanguage, Fraction: 1},
			{Stage: ocr.StageRecognizing, Fraction: 0.2},
			{Stage: ocr.StageRecognizing, Fraction: 0.3},
			{Stage: ocr.StageRecognizing, Fraction: 1.7},
		},
	}

	var progress []uint8
	_, err := New(provider).Transcribe(t.Context(), stage(t, ingest.MimeTypePNG, testdata.PNG()), func(p uint8) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 100}, progress)
}

func TestTranscribeNilImage(t *testing.T) {
	provider := &testlib.Provider{}
	_, err := New(provider).Transcribe(t.Context(), nil, nil)
	require.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, 0, provider.Started())
}

func TestTranscribeInitFailure(t *testing.T) {
	provider := &testlib.Provider{InitErr: errors.New("no traineddata")}
	_, err := New(provider).Transcribe(t.Context(), stage(t, ingest.MimeTypePNG, testdata.PNG()), nil)
	require.ErrorIs(t, err, ErrRecognition)
	assert.ErrorContains(t, err, "no traineddata")
	assert.Equal(t, 0, provider.Terminated())
}

func TestTranscribeRecognitionFailureTerminatesWorker(t *testing.T) {
	provider := &testlib.Provider{RecognizeErr: errors.New("engine crashed")}
	service := New(provider)

	for range 3 {
		_, err := service.Transcribe(t.Context(), stage(t, ingest.MimeTypePNG, testdata.PNG()), nil)
		require.ErrorIs(t, err, ErrRecognition)
	}
	assert.Equal(t, 3, provider.Started())
	assert.Equal(t, 3, provider.Terminated())
}

func TestTranscribeTranscodesUnsupportedFormats(t *testing.T) {
	provider := &testlib.Provider{Text: "ok", MimeTypes: []string{ingest.MimeTypePNG}}
	_, err := New(provider).Transcribe(t.Context(), stage(t, ingest.MimeTypeBMP, testdata.BMP()), nil)
	require.NoError(t, err)

	images := provider.Images()
	require.Len(t, images, 1)
	_, err = png.Decode(bytes.NewReader(images[0]))
	require.NoError(t, err)
}

func TestTranscribeBadImage(t *testing.T) {
	provider := &testlib.Provider{MimeTypes: []string{ingest.MimeTypePNG}}
	_, err := New(provider).Transcribe(t.Context(), stage(t, ingest.MimeTypeGIF, []byte("broken")), nil)
	require.ErrorIs(t, err, ErrRecognition)
	assert.Equal(t, 0, provider.Started())
}

func TestLanguagesAreFixed(t *testing.T) {
	service := New(&testlib.Provider{})
	languages := service.Languages()
	assert.Equal(t, []string{"vie", "eng"}, languages)

	languages[0] = "eng"
	assert.Equal(t, []string{"vie", "eng"}, service.Languages())
}
