package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/opengs/questionbank/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportDate = time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)

type countingSerializer struct {
	calls int
	err   error
}

func (s *countingSerializer) Serialize(ctx context.Context, document *Document) ([]byte, error) {
	s.calls++
	return []byte("doc"), s.err
}

func (s *countingSerializer) Extension() string { return "bin" }
func (s *countingSerializer) MimeType() string  { return "application/octet-stream" }

func TestExportEmptyRepository(t *testing.T) {
	serializer := &countingSerializer{}
	artifact, err := New(serializer).Export(t.Context(), nil)
	require.ErrorIs(t, err, ErrEmptyRepository)
	assert.Nil(t, artifact)
	assert.Equal(t, 0, serializer.calls)
}

func TestExportArtifact(t *testing.T) {
	serializer := &countingSerializer{}
	exporter := New(serializer, WithClock(func() time.Time { return exportDate }))

	artifact, err := exporter.Export(t.Context(), []bank.Record{{ID: "a", Question: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "NganHangDeThi_2024-05-01.bin", artifact.Filename)
	assert.Equal(t, "application/octet-stream", artifact.MimeType)
	assert.Equal(t, []byte("doc"), artifact.Data)

	dir := t.TempDir()
	path, err := artifact.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, artifact.Filename), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), data)
}

func TestExportSerializerFailure(t *testing.T) {
	_, err := New(&countingSerializer{err: errors.New("disk full")}).Export(t.Context(), []bank.Record{{ID: "a"}})
	require.ErrorContains(t, err, "disk full")
}

func TestFilenameUsesUTCDate(t *testing.T) {
	local := time.Date(2024, 5, 2, 1, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	assert.Equal(t, "NganHangDeThi_2024-05-01.docx", Filename(local, "docx"))
}

func TestBuildNumbersContiguously(t *testing.T) {
	records := []bank.Record{
		{ID: "q000007-x", Question: "First", Answer: "1"},
		{ID: "q000002-y", Question: "", Answer: ""},
		{ID: "q000042-z", Question: "Third", Answer: "3"},
	}
	document := Build(records)
	paragraphs := document.Paragraphs()
	require.Len(t, paragraphs, 2+3*3)

	assert.Equal(t, Heading1, paragraphs[0].Heading)
	assert.Equal(t, "NGÂN HÀNG ĐỀ THI", paragraphs[0].Text())
	assert.Equal(t, "Tổng số câu hỏi: 3", paragraphs[1].Text())

	for i := range records {
		heading := paragraphs[2+i*3]
		assert.Equal(t, Heading2, heading.Heading)
		assert.Equal(t, fmt.Sprintf("Câu %d:", i+1), heading.Text())
		assert.Equal(t, Spacing{Before: 400, After: 200}, heading.Spacing)
	}

	question := paragraphs[2+3]
	assert.Equal(t, []Run{{Text: QuestionPlaceholder, Bold: true}}, question.Runs)
	answer := paragraphs[2+3+1]
	assert.Equal(t, []Run{{Text: "Đáp án: ", Bold: true}, {Text: AnswerPlaceholder}}, answer.Runs)
}

func TestDOCXPackage(t *testing.T) {
	records := []bank.Record{
		{ID: "a", Question: "What is 2+2?\nPick one", Answer: "4 & <four>"},
		{ID: "b", Question: "Second"},
	}
	artifact, err := New(NewDOCX(), WithClock(func() time.Time { return exportDate })).Export(t.Context(), records)
	require.NoError(t, err)
	assert.Equal(t, "NganHangDeThi_2024-05-01.docx", artifact.Filename)
	assert.Equal(t, docxMimeType, artifact.MimeType)

	archive, err := zip.NewReader(bytes.NewReader(artifact.Data), int64(len(artifact.Data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, file := range archive.File {
		reader, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		reader.Close()
		files[file.Name] = string(data)
	}
	require.Contains(t, files, "[Content_Types].xml")
	body := files["word/document.xml"]

	assert.Contains(t, body, "NGÂN HÀNG ĐỀ THI")
	assert.Contains(t, body, "Tổng số câu hỏi: 2")
	assert.Contains(t, body, "4 &amp; &lt;four&gt;")
	assert.Contains(t, body, "What is 2+2?")
	assert.Contains(t, body, "Pick one")
	assert.Contains(t, body, `w:before="400"`)
	assert.Contains(t, body, AnswerPlaceholder)

	headings := regexp.MustCompile(`Câu (\d+):`).FindAllStringSubmatch(body, -1)
	require.Len(t, headings, 2)
	assert.Equal(t, "1", headings[0][1])
	assert.Equal(t, "2", headings[1][1])
}

func TestSerializerFor(t *testing.T) {
	for format, extension := range map[string]string{"": "docx", "DOCX": "docx", "html": "html", "md": "md", "markdown": "md"} {
		serializer, err := SerializerFor(format)
		require.NoError(t, err, format)
		assert.Equal(t, extension, serializer.Extension())
	}
	_, err := SerializerFor("pdf")
	require.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	lines := splitLines([]Run{{Text: "first\r\nsecond", Bold: true}, {Text: " tail"}})
	require.Len(t, lines, 2)
	assert.Equal(t, []Run{{Text: "first", Bold: true}}, lines[0])
	assert.Equal(t, []Run{{Text: "second", Bold: true}, {Text: " tail"}}, lines[1])

	lines = splitLines([]Run{{Text: AnswerLabel, Bold: true}, {Text: "4"}})
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 2)
}
