package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation_and_digits", "Hello, World! 2024", "hello-world-2024"},
		{"already_slug", "hello-world", "hello-world"},
		{"leading_trailing_symbols", "  --Go & Rust!!  ", "go-rust"},
		{"vietnamese", "Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"d_stroke", "Đà Nẵng", "da-nang"},
		{"accents", "Crème brûlée", "creme-brulee"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
		{"underscores", "snake_case_title", "snake-case-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestTrimPtr(t *testing.T) {
	assert.Nil(t, TrimPtr(nil))
	assert.Nil(t, TrimPtr(StringPtr("   ")))
	assert.Equal(t, "abc", *TrimPtr(StringPtr("  abc ")))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("8c1f6d43-1f52-4d0e-9a7c-3c1b2f0e4a11"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsLink(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/cover.png", true},
		{"http://localhost:9000/portfolio/a.pdf", true},
		{"/books/a.pdf", true},
		{"//evil.test/a.png", false},
		{"ftp://example.com/a", false},
		{"javascript:alert(1)", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLink(tt.in))
		})
	}
}

func TestTrimPtrKeepAndEmptyToNil(t *testing.T) {
	assert.Nil(t, TrimPtrKeep(nil))
	assert.Equal(t, "", *TrimPtrKeep(StringPtr("   ")))
	assert.Equal(t, "x", *TrimPtrKeep(StringPtr(" x ")))

	assert.Nil(t, EmptyToNil(StringPtr("")))
	assert.Equal(t, "x", *EmptyToNil(StringPtr("x")))
}
