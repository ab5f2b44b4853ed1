package sink

import (
	"bytes"
	"image"
	"testing"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

func testImage(t *testing.T) *image.RGBA {
	t.Helper()
	img := canvas.New(120, 90)
	mondrian.Generate(img, mondrian.ModeBasic, mondrian.NewRand(1))
	return img
}

func TestEncodeLossless(t *testing.T) {
	img := testImage(t)

	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(img, format)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := Decode(data, format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !canvas.Equal(img, got) {
				t.Errorf("%s output does not reproduce the canvas", format)
			}
		})
	}
}

func TestEncodePNGSignature(t *testing.T) {
	data, err := Encode(testImage(t), "PNG")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output should start with the PNG signature")
	}
}

func TestEncodeJPEGQuality(t *testing.T) {
	img := testImage(t)

	low, err := Encode(img, "jpg", WithJPEGQuality(10))
	if err != nil {
		t.Fatalf("Encode(q=10) error: %v", err)
	}
	high, err := Encode(img, FormatJPEG, WithJPEGQuality(100))
	if err != nil {
		t.Fatalf("Encode(q=100) error: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("quality 10 (%d bytes) should be smaller than quality 100 (%d bytes)", len(low), len(high))
	}

	decoded, err := Decode(high, FormatJPEG)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Bounds() = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestEncodeInvalidFormat(t *testing.T) {
	_, err := Encode(testImage(t), "svg")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(svg) error = %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), FormatPNG); err == nil {
		t.Error("Decode of garbage should fail")
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		"png":   "png",
		".PNG":  "png",
		"jpg":   "jpeg",
		"JPEG":  "jpeg",
		"tif":   "tiff",
		" bmp ": "bmp",
	}
	for in, want := range tests {
		if got := NormalizeFormat(in); got != want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "jpg", "tiff"}); err != nil {
		t.Errorf("ValidateFormats() error: %v", err)
	}
	if err := ValidateFormats([]string{"png", "gif"}); err == nil {
		t.Error("ValidateFormats should reject gif")
	}
}

func TestExtAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, ct string
	}{
		{"png", "png", "image/png"},
		{"jpeg", "jpg", "image/jpeg"},
		{"bmp", "bmp", "image/bmp"},
		{"tiff", "tiff", "image/tiff"},
		{"weird", "weird", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := Ext(tt.format); got != tt.ext {
			t.Errorf("Ext(%q) = %q, want %q", tt.format, got, tt.ext)
		}
		if got := ContentType(tt.format); got != tt.ct {
			t.Errorf("ContentType(%q) = %q, want %q", tt.format, got, tt.ct)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"basic.png", "png", false},
		{"out/complex.JPG", "jpeg", false},
		{"art.tif", "tiff", false},
		{"noext", "", true},
		{"picture.gif", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestFormats(t *testing.T) {
	got := Formats()
	want := []string{"bmp", "jpeg", "png", "tiff"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
