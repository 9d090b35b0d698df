package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrConversion is returned when an uploaded image cannot be decoded or
// re-encoded. It is terminal for the request: format failures are not
// transient and must not be retried automatically.
var ErrConversion = errors.New("unable to process this image format")

// JPEGQuality is the fixed quality factor for the canonical encoding.
const JPEGQuality = 85

// MimeType is the media type of the canonical encoding.
const MimeType = "image/jpeg"

// ToJPEG re-encodes an arbitrary uploaded image into the one canonical JPEG
// representation the model accepts. The pixels are painted onto an opaque
// white background first so transparent PNG/WebP uploads flatten cleanly.
func ToJPEG(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	return buf.Bytes(), nil
}
