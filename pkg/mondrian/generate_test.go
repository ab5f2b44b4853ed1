package mondrian

import (
	"testing"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"1", ModeBasic, false},
		{"basic", ModeBasic, false},
		{" Basic ", ModeBasic, false},
		{"2", ModeComplex, false},
		{"COMPLEX", ModeComplex, false},

		{"", 0, true},
		{"3", 0, true},
		{"fancy", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
				t.Errorf("error code = %v, want INVALID_MODE", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeText(t *testing.T) {
	for _, m := range Modes {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText() error: %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil || back != m {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	if _, err := Mode(7).MarshalText(); err == nil {
		t.Error("MarshalText of invalid mode should fail")
	}
}

func TestModeFlagValue(t *testing.T) {
	var m Mode
	if m.String() != "" {
		t.Errorf("zero Mode prints %q, want empty (no default shown in help)", m.String())
	}
	if Mode(9).String() != "unknown" {
		t.Errorf("Mode(9).String() = %q", Mode(9).String())
	}
	if err := m.Set("complex"); err != nil || m != ModeComplex {
		t.Fatalf("Set(complex) = %v, %v", m, err)
	}
	if m.Type() != "mode" {
		t.Errorf("Type() = %q", m.Type())
	}
	if err := m.Set("nope"); err == nil {
		t.Error("Set(nope) should fail")
	}
	if m != ModeComplex {
		t.Error("failed Set must not change the value")
	}
}

func TestEntryPointsPaint(t *testing.T) {
	basic := canvas.New(300, 300)
	GenerateBasic(basic)
	if h := canvas.Histogram(basic); len(h) < 2 {
		t.Error("GenerateBasic left the canvas blank")
	}

	complexImg := canvas.New(300, 300)
	GenerateComplex(complexImg)
	if h := canvas.Histogram(complexImg); len(h) < 2 {
		t.Error("GenerateComplex left the canvas blank")
	}
}

func TestNewSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 16; i++ {
		s := NewSeed()
		if s == 0 {
			t.Fatal("NewSeed returned 0")
		}
		seen[s] = true
	}
	if len(seen) < 2 {
		t.Error("NewSeed should not repeat a single value")
	}
}
