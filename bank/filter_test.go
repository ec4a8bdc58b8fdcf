package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleRecords = []Record{
	{ID: "1", Question: "What does the cat say?", Answer: "Meow"},
	{ID: "2", Question: "What does the dog say?", Answer: "Woof"},
	{ID: "3", Question: "Thủ đô của Việt Nam?", Answer: "Hà Nội"},
	{ID: "4", Question: "", Answer: "Only answer about CATS"},
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	result := Filter(sampleRecords, "")
	assert.Equal(t, sampleRecords, result)
}

func TestFilterCaseInsensitive(t *testing.T) {
	result := Filter(sampleRecords[:2], "CAT")
	assert.Equal(t, []string{"1"}, ids(result))

	result = Filter(sampleRecords, "cat")
	assert.Equal(t, []string{"1", "4"}, ids(result))
}

func TestFilterMatchesAnswer(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(Filter(sampleRecords, "woof")))
}

func TestFilterUnicode(t *testing.T) {
	assert.Equal(t, []string{"3"}, ids(Filter(sampleRecords, "HÀ NỘI")))
	assert.Equal(t, []string{"3"}, ids(Filter(sampleRecords, "việt")))
}

func TestFilterIsOrderedSubsequence(t *testing.T) {
	for _, query := range []string{"what", "say", "a", "zzz", "?"} {
		result := Filter(sampleRecords, query)

		position := 0
		for _, record := range result {
			for position < len(sampleRecords) && sampleRecords[position].ID != record.ID {
				position++
			}
			assert.Less(t, position, len(sampleRecords), "result is not a subsequence for %q", query)
			position++

			q := strings.ToLower(query)
			assert.True(t, strings.Contains(strings.ToLower(record.Question), q) || strings.Contains(strings.ToLower(record.Answer), q))
		}
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	records := []Record{{ID: "a", Question: "x"}, {ID: "b", Question: "y"}}
	result := Filter(records, "y")
	result[0].Question = "changed"
	assert.Equal(t, "y", records[1].Question)
}

func TestFilterLowercasesWithoutFolding(t *testing.T) {
	records := []Record{{ID: "a", Question: "Straße"}, {ID: "b", Question: "STRASSE"}}
	assert.Equal(t, []string{"b"}, ids(Filter(records, "strasse")))
	assert.Equal(t, []string{"a"}, ids(Filter(records, "STRAßE")))
}
