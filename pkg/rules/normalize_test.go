package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jpg", ".jpg"},
		{".jpg", ".jpg"},
		{" PNG ", ".png"},
		{".PDF", ".pdf"},
		{"", ""},
		{"   ", ""},
		{".", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeExtension(tt.in), "input %q", tt.in)
	}
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "mixed case and dots",
			in:   "jpg, PNG , .pdf",
			want: []string{".jpg", ".png", ".pdf"},
		},
		{
			name: "duplicates collapsed",
			in:   "jpg, .jpg, JPG",
			want: []string{".jpg"},
		},
		{
			name: "empty parts dropped",
			in:   "jpg,, ,png",
			want: []string{".jpg", ".png"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExtensions(tt.in))
		})
	}
}

func TestFormatExtensions(t *testing.T) {
	assert.Equal(t, "jpg, png", FormatExtensions([]string{".jpg", ".png"}))
	assert.Equal(t, "", FormatExtensions(nil))
}

func TestNormalizeExtensionsRoundTrip(t *testing.T) {
	exts := NormalizeExtensions([]string{"JPG", ".png", "png"})
	assert.Equal(t, []string{".jpg", ".png"}, exts)
	assert.Equal(t, exts, NormalizeExtensions(ParseExtensions(FormatExtensions(exts))))
}
