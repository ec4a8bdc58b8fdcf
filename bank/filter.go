package bank

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Returns records whose question or answer contains the query, ignoring case.
// Empty query matches everything. Result keeps repository order and never aliases the input.
func Filter(records []Record, query string) []Record {
	if query == "" {
		return slices.Clone(records)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	result := make([]Record, 0, len(records))
	for _, record := range records {
		if strings.Contains(lower.String(record.Question), needle) || strings.Contains(lower.String(record.Answer), needle) {
			result = append(result, record)
		}
	}
	return result
}
