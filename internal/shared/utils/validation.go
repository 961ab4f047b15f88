package utils

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// IsLink: http(s) URL có host, hoặc đường dẫn tuyệt đối trên cùng site ("/books/a.pdf")
func IsLink(s string) bool {
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LinkRule dùng cho các field URL tùy chọn (coverUrl, fileUrl, logoUrl...)
var LinkRule = validation.NewStringRuleWithError(
	IsLink,
	validation.NewError("validation_is_link", "must be an http(s) URL or an absolute path"),
)

// OptionalLink chỉ validate khi pointer khác nil và khác rỗng
func OptionalLink(s *string) validation.Rule {
	return validation.When(s != nil && *s != "", LinkRule)
}
