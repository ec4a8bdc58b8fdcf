package bank

import (
	"github.com/opengs/questionbank/ingest"
)

// Committed question. Records are never edited after creation, only deleted.
type Record struct {
	// Opaque unique identifier assigned at commit time
	ID string `json:"id"`
	// Question text. May be empty
	Question string `json:"question"`
	// Answer text. May be empty
	Answer string `json:"answer"`
	// Image staged at commit time. Nil when the record has no image
	Image *ingest.Handle `json:"-"`
}

// Returns inline data URI of the attached image. Second value is false if record has no image.
func (r Record) ImageURL() (string, bool) {
	if r.Image == nil {
		return "", false
	}
	return r.Image.DataURI(), true
}
