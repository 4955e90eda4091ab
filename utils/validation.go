// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	internationalPhone = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
	nationalPhone      = regexp.MustCompile(`^0\d{8,9}$`)
)

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone accepts E.164 numbers (+593991234567) and Ecuadorian
// national numbers with the trunk prefix (0991234567, 042345678).
func ValidatePhone(phone string) bool {
	cleaned := NormalizePhone(phone)
	return internationalPhone.MatchString(cleaned) || nationalPhone.MatchString(cleaned)
}
