package ingest

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Self-contained image staged by the ingestor. Immutable after creation.
type Handle struct {
	name     string
	mimeType string
	data     []byte
}

func newHandle(name string, mimeType string, data []byte) *Handle {
	return &Handle{name: name, mimeType: mimeType, data: data}
}

// Original file name. Informational only
func (h *Handle) Name() string {
	return h.name
}

func (h *Handle) MimeType() string {
	return h.mimeType
}

func (h *Handle) Size() int {
	return len(h.data)
}

// Returns copy of the image bytes
func (h *Handle) Bytes() []byte {
	return bytes.Clone(h.data)
}

// Returns image encoded as `data:<mime>;base64,...`
func (h *Handle) DataURI() string {
	return "data:" + h.mimeType + ";base64," + base64.StdEncoding.EncodeToString(h.data)
}

// Returns image transcoded to PNG. GIF images use the first frame only.
func (h *Handle) PNG() ([]byte, error) {
	if h.mimeType == MimeTypePNG {
		return h.Bytes(), nil
	}

	img, err := h.decode()
	if err != nil {
		return nil, errors.Join(ErrBadImage, err)
	}

	var outBuf bytes.Buffer
	if err := png.Encode(&outBuf, img); err != nil {
		return nil, errors.Join(errors.New("failed to transcode image to PNG"), err)
	}
	return outBuf.Bytes(), nil
}

func (h *Handle) decode() (image.Image, error) {
	reader := bytes.NewReader(h.data)
	switch h.mimeType {
	case MimeTypeJPEG:
		return jpeg.Decode(reader)
	case MimeTypeGIF:
		gifData, err := gif.DecodeAll(reader)
		if err != nil {
			return nil, err
		}
		if len(gifData.Image) == 0 {
			return nil, errors.New("gif image has zero frames")
		}
		return gifData.Image[0], nil
	case MimeTypeBMP:
		return bmp.Decode(reader)
	case MimeTypeWEBP:
		return webp.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}
