package printer

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// TestRenderFunctions verifies that all render functions keep the input text.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
		input    string
	}{
		{"Faint", Faint, "test text"},
		{"Bold", Bold, "test text"},
		{"Success", Success, "test text"},
		{"Error", Error, "test text"},
		{"Warning", Warning, "test text"},
		{"Info", Info, "test text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function(tt.input)
			if !strings.Contains(result, tt.input) {
				t.Errorf("%s() = %q, want it to contain %q", tt.name, result, tt.input)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	for _, render := range []func(string) string{Faint, Bold, Success, Error, Warning, Info} {
		if got := render("plain"); got != "plain" {
			t.Errorf("expected unstyled output, got %q", got)
		}
	}
}

func TestFprintFunctions(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	tests := []struct {
		name     string
		function func(io.Writer, string)
	}{
		{"FprintSuccess", FprintSuccess},
		{"FprintError", FprintError},
		{"FprintWarning", FprintWarning},
		{"FprintInfo", FprintInfo},
		{"FprintFaint", FprintFaint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.function(&buf, "hello")
			if buf.String() != "hello\n" {
				t.Errorf("%s() wrote %q, want %q", tt.name, buf.String(), "hello\n")
			}
		})
	}
}
