// Package imaging checks that a local file is a decodable image and turns it
// into the base64 payload sent to the completion API.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// passthroughExtensions are sent as-is; everything else is re-encoded as JPEG
var passthroughExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
}

// Encoded is the base64 payload of an image file
type Encoded struct {
	// Data is the standard base64 encoding of the payload bytes
	Data string
	// MIMEType is sniffed from the payload bytes, e.g. "image/png"
	MIMEType string
	// Converted is true when the file was re-encoded as JPEG
	Converted bool
}

// Validate checks that path exists and decodes as a raster image. Every
// failure is reported as errors.InvalidImage with the reason in its details.
func Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.InvalidImage(path, err)
	}
	defer f.Close()

	if _, _, err := image.Decode(f); err != nil {
		return errors.InvalidImage(path, err)
	}
	return nil
}

// IsPassthrough reports whether files with this path's extension are sent unmodified
func IsPassthrough(path string) bool {
	return passthroughExtensions[strings.ToLower(filepath.Ext(path))]
}

// Encode returns the base64 payload for an image that already passed Validate.
// Whitelisted formats are encoded byte for byte; other files are decoded,
// flattened to RGB and re-encoded as JPEG first.
func Encode(path string) (*Encoded, error) {
	var (
		payload   []byte
		converted bool
		err       error
	)

	if IsPassthrough(path) {
		payload, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.EncodeFailed(err)
		}
	} else {
		payload, err = convertToJPEG(path)
		if err != nil {
			return nil, errors.EncodeFailed(err)
		}
		converted = true
	}

	return &Encoded{
		Data:      base64.StdEncoding.EncodeToString(payload),
		MIMEType:  mimetype.Detect(payload).String(),
		Converted: converted,
	}, nil
}

func convertToJPEG(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, toRGB(img), nil); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// toRGB drops the alpha channel without compositing, keeping each pixel's
// straight colour values.
func toRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
