// Package capture validates and prepares images attached to a question.
package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxSize is the largest accepted payload, 10 MiB.
	MaxSize = 10 << 20

	DefaultMaxWidth = 1024
	DefaultQuality  = 80
)

var (
	ErrUnsupportedType = errors.New("image must be JPG, PNG or WebP")
	ErrTooLarge        = errors.New("image exceeds 10 MB")
	ErrUndecodable     = errors.New("image data does not match its type")
)

// formats maps accepted MIME types to the name image.DecodeConfig reports.
var formats = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Image is a validated image payload.
type Image struct {
	MIME string
	Data []byte
}

// DataURL encodes the image as a base64 data URL.
func (i *Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Validate checks the declared MIME type and size.
func Validate(mime string, size int64) error {
	if _, ok := formats[strings.ToLower(mime)]; !ok {
		return fmt.Errorf("%w: got %q", ErrUnsupportedType, mime)
	}
	if size > MaxSize {
		return fmt.Errorf("%w: %.1f MB", ErrTooLarge, float64(size)/(1<<20))
	}
	return nil
}

// New validates data against mime and checks that it decodes as that format.
func New(mime string, data []byte) (*Image, error) {
	mime = strings.ToLower(mime)
	if err := Validate(mime, int64(len(data))); err != nil {
		return nil, err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if format != formats[mime] {
		return nil, fmt.Errorf("%w: declared %s, found %s", ErrUndecodable, mime, format)
	}
	return &Image{MIME: mime, Data: data}, nil
}

// Load reads an image file. The type is sniffed from the content.
func Load(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%w: %.1f MB", ErrTooLarge, float64(info.Size())/(1<<20))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := New(http.DetectContentType(data), data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" URL.
func ParseDataURL(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, errors.New("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	return New(mime, data)
}

// Resize scales img down to fit within maxWidth x maxWidth, keeping the
// aspect ratio, and re-encodes it as JPEG. Smaller images keep their size.
func Resize(img *Image, maxWidth, quality int) (*Image, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > h {
		if w > maxWidth {
			h = max(1, h*maxWidth/w)
			w = maxWidth
		}
	} else if h > maxWidth {
		w = max(1, w*maxWidth/h)
		h = maxWidth
	}

	// JPEG has no alpha; flatten onto white
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &Image{MIME: "image/jpeg", Data: buf.Bytes()}, nil
}
