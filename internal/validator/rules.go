package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const handleRegex = `^[a-z0-9][a-z0-9_-]{1,31}$`

var (
	// HandleRgx matches account handles: lowercase alphanumerics, dash and
	// underscore, 2 to 32 characters, starting with a letter or digit.
	HandleRgx = regexp.MustCompile(handleRegex)
)

// NotBlank returns true if a string is not empty or contains only whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinRunes returns true if a string is greater than or equal to a minimum number of n
func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// MaxRunes returns true if a string is less than or equal to a maximum number of n
func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

// Matches returns true if a string value matches a specific regexp pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// In returns true if a value is in a list of values.
func In[T comparable](value T, list ...T) bool {
	for i := range list {
		if value == list[i] {
			return true
		}
	}
	return false
}

// NotIn returns true if a value is not in a list of values.
func NotIn[T comparable](value T, list ...T) bool {
	return !In(value, list...)
}

// NoDuplicates returns true if all the values in a slice are unique.
func NoDuplicates[T comparable](values []T) bool {
	uniqueValues := make(map[T]bool)

	for _, value := range values {
		uniqueValues[value] = true
	}

	return len(values) == len(uniqueValues)
}

// IsHandle returns true if a string is a well-formed account handle.
func IsHandle(value string) bool {
	return HandleRgx.MatchString(value)
}
