package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"single word", "walk", "walk"},
		{"internal run", "buy   milk", "buy milk"},
		{"tabs and newlines", "buy\tmilk\nnow", "buy milk now"},
		{"leading and trailing", "  buy milk  ", "buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.input); got != tt.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  High ", "high"},
		{"URGENT", "urgent"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLowerTrimSpace(tt.input); got != tt.want {
			t.Errorf("NormalizeLowerTrimSpace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb", "a\nb"},
		{"bare cr", "a\rb", "a\nb"},
		{"already lf", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeNewlines(tt.input); got != tt.want {
				t.Errorf("NormalizeNewlines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("value\r\n\n"); got != "value" {
		t.Errorf("TrimTrailingNewlines() = %q, want %q", got, "value")
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	if got := TrimTrailingSlash("http://localhost/"); got != "http://localhost" {
		t.Errorf("TrimTrailingSlash() = %q, want %q", got, "http://localhost")
	}
}
