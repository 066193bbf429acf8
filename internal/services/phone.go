package services

import "strings"

// NormalizePhone converts a US/Canada number to E.164. Other country codes are
// not supported. ok is false when fewer than ten digits remain.
func NormalizePhone(raw string) (e164 string, ok bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	case len(digits) >= 10:
		return "+1" + digits[len(digits)-10:], true
	}
	return "", false
}
