package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MimeTypePNG  = "image/png"
	MimeTypeJPEG = "image/jpeg"
	MimeTypeGIF  = "image/gif"
	MimeTypeBMP  = "image/bmp"
	MimeTypeWEBP = "image/webp"
)

// Default limit for a single image
const DefaultMaxSize = 32 << 20

var ErrInvalidMediaType = errors.New("file is not a supported image")
var ErrTooLarge = errors.New("image is too large")
var ErrBadImage = errors.New("bad image or corrupted")

var supportedMimeTypes = []string{MimeTypePNG, MimeTypeJPEG, MimeTypeGIF, MimeTypeBMP, MimeTypeWEBP}

var supportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

var mimeAliases = map[string]string{
	"image/jpg":      MimeTypeJPEG,
	"image/pjpeg":    MimeTypeJPEG,
	"image/x-ms-bmp": MimeTypeBMP,
	"image/x-bmp":    MimeTypeBMP,
}

// Returns list of accepted image mime types
func SupportedMimeTypes() []string {
	return slices.Clone(supportedMimeTypes)
}

// Checks if file name has one of the accepted image extensions
func IsImageExtension(name string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(path.Ext(name)))
}

// Dropped or selected file
type File struct {
	// File name as provided by the user
	Name string
	// Declared mime type. If empty, type is detected from the content
	MimeType string
	Content  io.Reader
}

type Option func(i *Ingestor)

func WithMaxSize(maxSize int64) Option {
	return func(i *Ingestor) {
		i.maxSize = maxSize
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingestor) {
		i.logger = logger
	}
}

// Validates image files and converts them into self-contained handles
type Ingestor struct {
	maxSize int64
	logger  *slog.Logger
}

func New(options ...Option) *Ingestor {
	ingestor := &Ingestor{
		maxSize: DefaultMaxSize,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(ingestor)
	}
	return ingestor
}

// Accepts exactly one file and returns its handle
func (i *Ingestor) Ingest(file File) (*Handle, error) {
	declared := normalizeMimeType(file.MimeType)
	if declared != "" && declared != "application/octet-stream" && !slices.Contains(supportedMimeTypes, declared) {
		i.logger.Debug("rejected file", "name", file.Name, "mimeType", declared)
		return nil, fmt.Errorf("%w: %s", ErrInvalidMediaType, declared)
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, i.maxSize+1))
	if err != nil {
		return nil, errors.Join(errors.New("failed to read image file"), err)
	}
	if int64(len(data)) > i.maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, i.maxSize)
	}

	mimeType := declared
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalizeMimeType(mimetype.Detect(data).String())
		if !slices.Contains(supportedMimeTypes, mimeType) {
			i.logger.Debug("rejected file", "name", file.Name, "detectedMimeType", mimeType)
			return nil, fmt.Errorf("%w: %s", ErrInvalidMediaType, mimeType)
		}
	}

	i.logger.Debug("image ingested", "name", file.Name, "mimeType", mimeType, "size", len(data))
	return newHandle(file.Name, mimeType, data), nil
}

// Reads image from the file system. Mime type is detected from the content.
func (i *Ingestor) IngestPath(fsys fs.FS, name string) (*Handle, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open image [%s]", name), err)
	}
	return i.Ingest(File{Name: path.Base(name), Content: bytes.NewReader(data)})
}

func normalizeMimeType(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if alias, ok := mimeAliases[mimeType]; ok {
		return alias
	}
	return mimeType
}
