package qrcode

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// The checks below are advisory. Build never calls them; callers use them to
// hint at likely typos before generating.

// ValidURL reports whether s parses as an absolute URL with a scheme and host.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone accepts an optional leading '+' followed by up to 16 digits, ignoring whitespace.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.Join(strings.Fields(s), ""))
}

// FormatPhoneNumber normalizes 10-digit and 1-prefixed 11-digit North American
// numbers to E.164. Anything else is returned unchanged.
func FormatPhoneNumber(s string) string {
	digits := nonDigitPattern.ReplaceAllString(s, "")

	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	default:
		return s
	}
}

// Advise returns a short warning for inputs that will encode but look wrong.
// An empty string means nothing looked off.
func Advise(r Record) string {
	switch v := r.(type) {
	case URL:
		if address := strings.TrimSpace(v.Address); address != "" && !ValidURL(address) {
			return "url does not look valid: " + address
		}
	case Email:
		if address := strings.TrimSpace(v.Address); address != "" && !ValidEmail(address) {
			return "email address does not look valid: " + address
		}
	case Phone:
		if number := strings.TrimSpace(v.Number); number != "" && !ValidPhone(number) {
			return "phone number does not look valid: " + number
		}
	case SMS:
		if number := strings.TrimSpace(v.Number); number != "" && !ValidPhone(number) {
			return "phone number does not look valid: " + number
		}
	}

	return ""
}
