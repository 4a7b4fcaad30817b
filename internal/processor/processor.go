// Package processor turns a finalized file into the bytes that get uploaded.
package processor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"photo-bridge/internal/domain"
)

const (
	DefaultMaxDimension = 1600
	DefaultJPEGQuality  = 80

	// Raw uploads are always labelled as JPEG, whatever the file really is.
	RawContentType  = "image/jpeg"
	JPEGContentType = "image/jpeg"
)

type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

type Processor struct {
	MaxDimension uint
	Quality      int
}

func New(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Processor{MaxDimension: uint(maxDimension), Quality: quality}
}

// Process reads path and prepares it for upload according to mode. The
// source file is never modified.
func (p *Processor) Process(path string, mode domain.ProcessingMode) (*Result, error) {
	switch mode {
	case domain.ProcessingModeRaw:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrProcessing, path, err)
		}
		return &Result{Data: data, ContentType: RawContentType}, nil
	case domain.ProcessingModeCompressed:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", domain.ErrProcessing, path, err)
		}
		defer f.Close()
		return p.Compress(f)
	}
	return nil, fmt.Errorf("%w: unknown processing mode %q", domain.ErrValidation, mode)
}

// Compress decodes any registered image format, shrinks it so the longest
// side fits MaxDimension (never enlarging) and re-encodes it as JPEG.
func (p *Processor) Compress(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrProcessing, err)
	}

	img, format, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrProcessing, err)
	}

	resized := resize.Thumbnail(p.MaxDimension, p.MaxDimension, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("%w: encode %s as jpeg: %v", domain.ErrProcessing, format, err)
	}

	size := resized.Bounds().Size()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: JPEGContentType,
		Width:       size.X,
		Height:      size.Y,
	}, nil
}

var (
	jpegSOI = []byte{0xFF, 0xD8}
	jpegEOI = []byte{0xFF, 0xD9}
)

// decode tolerates JPEGs cut off right before the end-of-image marker, which
// is how interrupted camera transfers usually leave them.
func decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil || !errors.Is(err, io.ErrUnexpectedEOF) || !bytes.HasPrefix(data, jpegSOI) {
		return img, format, err
	}

	patched := make([]byte, 0, len(data)+len(jpegEOI))
	patched = append(patched, data...)
	patched = append(patched, jpegEOI...)
	if img, format, perr := image.Decode(bytes.NewReader(patched)); perr == nil {
		return img, format, nil
	}
	return nil, "", err
}
