package logger

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the local part and the domain:
// john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if local == "" {
		return "***@" + domain
	}

	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***@" + domain
}
