package source

import (
	"context"
	"io"
)

// Place where images for the question bank are located
type Source interface {
	// Open data source for iteration
	Open() (Iterator, error)
}

// Opened data source
type Iterator interface {
	io.Closer

	// Get and open next image. Thread safe. If there are no images left, returns [io.EOF] error
	Next(ctx context.Context) (FileHandler, error)
}

type FileHandler interface {
	io.ReadCloser

	// Path to the file in the data source
	Path() string
	// Answer provided next to the image. Empty if there is none
	Answer() string
}
