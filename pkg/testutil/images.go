package testutil

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat names an encoder usable by WriteImage
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatGIF  ImageFormat = "gif"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

// SampleImage returns a small gradient with a half-transparent right column
func SampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			a := uint8(0xff)
			if x == 7 {
				a = 0x80
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: 0x60, A: a})
		}
	}
	return img
}

// WriteImage encodes SampleImage in format and writes it to dir/name.
// The file name is used as given, so the extension may differ from the format.
func WriteImage(t *testing.T, dir, name string, format ImageFormat) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	img := SampleImage()
	switch format {
	case FormatPNG:
		err = png.Encode(f, img)
	case FormatJPEG:
		err = jpeg.Encode(f, img, nil)
	case FormatGIF:
		err = gif.Encode(f, img, nil)
	case FormatBMP:
		// keep to 24-bit BMP, the most widely decodable variant
		err = bmp.Encode(f, opaque(img))
	case FormatTIFF:
		err = tiff.Encode(f, img, nil)
	default:
		t.Fatalf("unsupported image format %q", format)
	}
	require.NoError(t, err)

	return path
}

// losslessWebP is a 1x1 VP8L image; x/image has no WebP encoder
const losslessWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// LosslessWebP returns the bytes of a 1x1 lossless WebP image
func LosslessWebP() []byte {
	b, err := base64.StdEncoding.DecodeString(losslessWebP)
	if err != nil {
		panic(err)
	}
	return b
}

// WriteWebP writes LosslessWebP to dir/name and returns the path
func WriteWebP(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, LosslessWebP())
}

// WriteFile writes raw bytes to dir/name and returns the path
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func opaque(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
