package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Mọi run ký tự không phải a-z, 0-9 → một dấu gạch ngang
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSlug chuyển title bất kỳ thành URL slug
// "Hello, World! 2024" → "hello-world-2024"
// "Nguyễn Nhật Ánh"   → "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	// Step 1: Bỏ dấu (NFD tách dấu khỏi ký tự gốc rồi xoá combining marks)
	ascii := RemoveDiacritics(input)

	// Step 2: Lowercase
	lower := strings.ToLower(ascii)

	// Step 3: Run ký tự đặc biệt → "-"
	hyphenated := nonAlphanumeric.ReplaceAllString(lower, "-")

	// Step 4: Trim leading/trailing hyphens
	return strings.Trim(hyphenated, "-")
}

// RemoveDiacritics bỏ dấu tiếng Việt và các ngôn ngữ Latin khác
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	// "đ" không có dạng decomposed
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(result)
}

// isMn reports whether r is a Unicode non-spacing mark
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
