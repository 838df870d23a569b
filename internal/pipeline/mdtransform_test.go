package pipeline

import (
	"context"
	"testing"
)

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "LF unchanged",
			input:    "line1\nline2\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CR to LF",
			input:    "line1\rline2\rline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "mixed line endings",
			input:    "line1\r\nline2\rline3\nline4",
			expected: "line1\nline2\nline3\nline4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompressBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single blank line kept", input: "a\n\nb", expected: "a\n\nb"},
		{name: "two blank lines compressed", input: "a\n\n\nb", expected: "a\n\nb"},
		{name: "many blank lines compressed", input: "a\n\n\n\n\n\nb", expected: "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := compressBlankLines(tt.input); got != tt.expected {
				t.Errorf("compressBlankLines() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHighlights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single", input: "a ==b== c", expected: "a <mark>b</mark> c"},
		{name: "two on one line", input: "==a== and ==b==", expected: "<mark>a</mark> and <mark>b</mark>"},
		{name: "unclosed", input: "a ==b", expected: "a ==b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ConvertMarkPlaceholders(convertHighlights(tt.input))
			if got != tt.expected {
				t.Errorf("highlight round = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTrimLeftWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "common indent and surrounding blank lines",
			input:    "\n    a\n      b\n    ",
			expected: "a\n  b",
		},
		{
			name:     "empty lines ignored for indent",
			input:    "  a\n\n  b",
			expected: "a\n\nb",
		},
		{
			name:     "space-only line counts as indented",
			input:    "    a\n  \n    b",
			expected: "  a\n\n  b",
		},
		{
			name:     "single trailing newline removed",
			input:    "\n  a\n",
			expected: "a",
		},
		{
			name:     "no common indent returns input unchanged",
			input:    "\na\n  b\n",
			expected: "\na\n  b\n",
		},
		{
			name:     "tabs are not indentation",
			input:    "\t\ta\n\t\tb",
			expected: "\t\ta\n\t\tb",
		},
		{
			name:     "only one blank line removed at each end",
			input:    "\n\n  a\n\n",
			expected: "\na\n",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TrimLeftWhitespace(tt.input); got != tt.expected {
				t.Errorf("TrimLeftWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	input := "\r\n    # Title\r\n\r\n\r\n\r\n    ==hot== text\r\n"

	dedented := (&CommonMarkPreprocessor{Dedent: true}).PreprocessMarkdown(ctx, input)
	if want := "# Title\n\n" + MarkStartPlaceholder + "hot" + MarkEndPlaceholder + " text"; dedented != want {
		t.Errorf("Dedent=true: got %q, want %q", dedented, want)
	}

	plain := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, "a\r\n\r\n\r\n\r\nb")
	if plain != "a\n\nb" {
		t.Errorf("Dedent=false: got %q", plain)
	}
}

func TestCommonMarkPreprocessor_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\n==b=="
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("cancelled preprocess changed content: %q", got)
	}
}
