package cli

import "testing"

func TestListenURL(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":8080", "http://localhost:8080"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"art.local:80", "http://art.local:80"},
	}
	for _, tt := range tests {
		if got := listenURL(tt.addr); got != tt.want {
			t.Errorf("listenURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestLimitsText(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{4096, 2048, "4096x2048 px"},
		{0, 0, "∞x∞ px"},
		{0, 100, "∞x100 px"},
	}
	for _, tt := range tests {
		if got := limitsText(tt.w, tt.h); got != tt.want {
			t.Errorf("limitsText(%d, %d) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}
