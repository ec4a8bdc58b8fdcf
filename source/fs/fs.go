package fs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/source"
)

// Suffix of the text file holding answer for the image with the same name. `cat.png` -> `cat.png.answer.txt`
const AnswerSuffix = ".answer.txt"

// Reads images from the folder. Files are returned in lexical order, folders are walked recursively.
type FS struct {
	fs   fs.FS
	path string
}

func New(fs fs.FS, path string) *FS {
	return &FS{
		fs:   fs,
		path: path,
	}
}

func (f *FS) Open() (source.Iterator, error) {
	var paths []string
	err := fs.WalkDir(f.fs, f.path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !ingest.IsImageExtension(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to list images in the folder"), err)
	}

	return &fsIterator{
		fs:    f.fs,
		paths: paths,
	}, nil
}

type fsIterator struct {
	fs     fs.FS
	paths  []string
	locker sync.Mutex
}

func (i *fsIterator) Next(ctx context.Context) (source.FileHandler, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.locker.Lock()
	defer i.locker.Unlock()

	if len(i.paths) == 0 {
		return nil, io.EOF
	}
	path := i.paths[0]
	i.paths = i.paths[1:]

	answer, err := fs.ReadFile(i.fs, path+AnswerSuffix)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(errors.New("failed to read answer file"), err)
	}

	return &fsFileHandler{
		fs:     i.fs,
		path:   path,
		answer: strings.TrimSpace(string(answer)),
	}, nil
}

func (i *fsIterator) Close() error {
	return nil
}

type fsFileHandler struct {
	fs     fs.FS
	fp     fs.File
	path   string
	answer string
}

func (h *fsFileHandler) Path() string {
	return h.path
}

func (h *fsFileHandler) Answer() string {
	return h.answer
}

func (h *fsFileHandler) Close() error {
	if h.fp != nil {
		return h.fp.Close()
	}
	return nil
}

func (h *fsFileHandler) Read(p []byte) (n int, err error) {
	if h.fp == nil {
		fp, err := h.fs.Open(h.path)
		if err != nil {
			return 0, errors.Join(errors.New("failed to open file for reading"), err)
		}
		h.fp = fp
	}

	return h.fp.Read(p)
}
