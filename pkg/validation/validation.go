package validation

import (
	"math"
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	capRegex      = regexp.MustCompile(`^\d{5}$`)
	provinceRegex = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidCAP validates an Italian postal code (5 digits)
func IsValidCAP(cap string) bool {
	return capRegex.MatchString(strings.TrimSpace(cap))
}

// IsValidProvince validates a two-letter province code
func IsValidProvince(province string) bool {
	return provinceRegex.MatchString(strings.TrimSpace(province))
}

// IsPositiveAmount reports whether v is a finite number greater than zero
func IsPositiveAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsNonNegativeAmount reports whether v is a finite number of at least zero
func IsNonNegativeAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
