package export

import (
	"strings"
	"testing"

	"github.com/opengs/questionbank/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	data, err := NewMarkdown().Serialize(t.Context(), Build([]bank.Record{
		{ID: "a", Question: "1. What is *this*?", Answer: "4"},
	}))
	require.NoError(t, err)

	expected := strings.Join([]string{
		"# NGÂN HÀNG ĐỀ THI",
		"Tổng số câu hỏi: 1",
		"## Câu 1:",
		`**1\. What is \*this\*?**`,
		"**Đáp án:** 4",
		"",
	}, "\n\n")
	assert.Equal(t, expected, string(data))
}

func TestHTML(t *testing.T) {
	data, err := NewHTML().Serialize(t.Context(), Build([]bank.Record{
		{ID: "a", Question: "Line one\n\nLine <two>", Answer: ""},
	}))
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "<title>NGÂN HÀNG ĐỀ THI</title>")
	assert.Contains(t, page, "<h1>NGÂN HÀNG ĐỀ THI</h1>")
	assert.Contains(t, page, "<h2>Câu 1:</h2>")
	assert.Contains(t, page, "<strong>Line one</strong><br")
	assert.Contains(t, page, "<strong>Line &lt;two&gt;</strong>")
	assert.Contains(t, page, "<strong>Đáp án:</strong> (Chưa có đáp án)")
}
