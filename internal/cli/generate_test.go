package cli

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		mode    mondrian.Mode
		formats []string
		index   int
		count   int
		want    map[string]string
	}{
		{
			name:    "named after mode",
			mode:    mondrian.ModeBasic,
			formats: []string{"png"},
			count:   1,
			want:    map[string]string{"png": "basic.png"},
		},
		{
			name:    "numbered batch",
			mode:    mondrian.ModeComplex,
			formats: []string{"png", "jpeg"},
			index:   1,
			count:   3,
			want:    map[string]string{"png": "complex-2.png", "jpeg": "complex-2.jpg"},
		},
		{
			name:    "extension replaced per format",
			base:    "art.png",
			mode:    mondrian.ModeBasic,
			formats: []string{"png", "jpeg"},
			count:   1,
			want:    map[string]string{"png": "art.png", "jpeg": "art.jpg"},
		},
		{
			name:    "user spelling kept",
			base:    "art.jpeg",
			mode:    mondrian.ModeBasic,
			formats: []string{"jpeg"},
			count:   1,
			want:    map[string]string{"jpeg": "art.jpeg"},
		},
		{
			name:    "no extension",
			base:    "out/pic",
			mode:    mondrian.ModeBasic,
			formats: []string{"bmp"},
			count:   1,
			want:    map[string]string{"bmp": "out/pic.bmp"},
		},
		{
			name:    "unknown extension is part of the stem",
			base:    "art.v2",
			mode:    mondrian.ModeBasic,
			formats: []string{"png"},
			count:   1,
			want:    map[string]string{"png": "art.v2.png"},
		},
		{
			name:    "batch with base",
			base:    "gallery/basic.png",
			mode:    mondrian.ModeBasic,
			formats: []string{"png"},
			index:   0,
			count:   2,
			want:    map[string]string{"png": "gallery/basic-1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.base, tt.mode, tt.formats, tt.index, tt.count)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"png, jpeg,,", []string{"png", "jpeg"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func newTestCLI() *CLI {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Enabled = false
	return c
}

func TestRunGenerateBatch(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)

	opts := &generateOpts{
		mode:     mondrian.ModeBasic,
		width:    50,
		height:   40,
		seed:     7,
		formats:  "png,bmp",
		output:   filepath.Join(dir, "art.png"),
		count:    2,
		noPrompt: true,
	}
	if err := c.runGenerate(ctx, opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	for _, name := range []string{"art-1.png", "art-1.bmp", "art-2.png", "art-2.bmp"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	// Picture i uses seed+i.
	for i, name := range []string{"art-1.png", "art-2.png"} {
		got, err := readImage(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("readImage(%s) error: %v", name, err)
		}
		want := canvas.New(50, 40)
		mondrian.Generate(want, mondrian.ModeBasic, mondrian.NewRand(7+uint64(i)))
		if !canvas.Equal(got, want) {
			t.Errorf("%s differs from a direct generation with seed %d", name, 7+i)
		}
	}
}

func TestRunGenerateFormatFromOutput(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)

	out := filepath.Join(dir, "pic.jpg")
	opts := &generateOpts{mode: mondrian.ModeComplex, width: 64, height: 64, output: out, count: 1, noPrompt: true}
	if err := c.runGenerate(ctx, opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s: %v", out, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pic.png")); err == nil {
		t.Error("png written although -o named a jpeg file")
	}
}

func TestRunGenerateLastSeed(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)

	opts := &generateOpts{
		mode: mondrian.ModeBasic, width: 20, height: 20,
		seed: math.MaxUint64 - 1, count: 2, noPrompt: true,
		output: filepath.Join(dir, "edge.png"),
	}
	if err := c.runGenerate(ctx, opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	got, err := readImage(filepath.Join(dir, "edge-2.png"))
	if err != nil {
		t.Fatal(err)
	}
	want := canvas.New(20, 20)
	mondrian.Generate(want, mondrian.ModeBasic, mondrian.NewRand(math.MaxUint64))
	if !canvas.Equal(got, want) {
		t.Error("second picture was not painted with the largest seed")
	}
}

func TestRunGenerateErrors(t *testing.T) {
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)

	tests := []struct {
		name string
		opts generateOpts
		code errors.Code
	}{
		{"zero count", generateOpts{mode: mondrian.ModeBasic, width: 10, height: 10}, errors.ErrCodeInvalidInput},
		{"bad format", generateOpts{mode: mondrian.ModeBasic, width: 10, height: 10, count: 1, formats: "gif"}, errors.ErrCodeInvalidFormat},
		{"negative width", generateOpts{mode: mondrian.ModeBasic, width: -1, height: 10, count: 1}, errors.ErrCodeInvalidDimensions},
		{"seed wraps", generateOpts{mode: mondrian.ModeBasic, width: 10, height: 10, count: 2, seed: math.MaxUint64}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runGenerate(ctx, &tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("runGenerate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
