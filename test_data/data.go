// Package testdata generates small images of every supported format for tests.
package testdata

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
)

// WebP file header. Used for mime type detection only.
var WEBPHeader = []byte("RIFF\x1a\x00\x00\x00WEBPVP8L\x0d\x00\x00\x00\x2f\x00\x00\x00\x10\x07\x10\x11\x11\x88\x88\xfe\x07\x00")

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 60), B: 200, A: 255})
		}
	}
	return img
}

func encode(encoder func(buf *bytes.Buffer, img image.Image) error) []byte {
	var buf bytes.Buffer
	if err := encoder(&buf, sample()); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func PNG() []byte {
	return encode(func(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) })
}

func JPEG() []byte {
	return encode(func(buf *bytes.Buffer, img image.Image) error { return jpeg.Encode(buf, img, nil) })
}

func GIF() []byte {
	return encode(func(buf *bytes.Buffer, img image.Image) error { return gif.Encode(buf, img, nil) })
}

func BMP() []byte {
	return encode(func(buf *bytes.Buffer, img image.Image) error { return bmp.Encode(buf, img) })
}
