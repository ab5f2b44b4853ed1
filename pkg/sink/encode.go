package sink

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatBMP:  true,
	FormatTIFF: true,
}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
}

// EncodeOption configures encoding.
type EncodeOption func(*encoder)

type encoder struct {
	quality int
}

// WithJPEGQuality sets the JPEG quality (1-100). Ignored for other formats.
func WithJPEGQuality(q int) EncodeOption {
	return func(e *encoder) {
		if q > 0 {
			e.quality = min(q, 100)
		}
	}
}

// NormalizeFormat lower-cases a format name and maps aliases ("jpg", "tif").
func NormalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")); f {
	case "jpg":
		return FormatJPEG
	case "tif":
		return FormatTIFF
	default:
		return f
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[NormalizeFormat(format)] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Formats returns the supported formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Ext returns the file extension for format, without the dot.
func Ext(format string) string {
	f := NormalizeFormat(format)
	if f == FormatJPEG {
		return "jpg"
	}
	return f
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[NormalizeFormat(format)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Encode serializes img in the requested format.
func Encode(img image.Image, format string, opts ...EncodeOption) ([]byte, error) {
	e := encoder{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&e)
	}

	var buf bytes.Buffer
	var err error
	switch f := NormalizeFormat(format); f {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality})
	case FormatBMP:
		err = bmp.Encode(&buf, img)
	case FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// Decode parses data previously produced by [Encode].
func Decode(data []byte, format string) (image.Image, error) {
	r := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch NormalizeFormat(format) {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}
	return img, nil
}

// FormatFromPath infers the format from a file name's extension.
func FormatFromPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q", path)
	}
	f := NormalizeFormat(ext)
	if err := ValidateFormat(f); err != nil {
		return "", err
	}
	return f, nil
}
