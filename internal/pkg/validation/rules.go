package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// EmailPattern is a deliberately loose address check; gin binding does the strict one
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	PasswordMinLength = 8
	// bcrypt ignores everything past 72 bytes
	PasswordMaxLength = 72

	CourseNameMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	Whitespace *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	Whitespace: regexp.MustCompile(`\s+`),
}

// NormalizeCourseName trims the name and collapses inner whitespace
func NormalizeCourseName(name string) string {
	return CompiledPatterns.Whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
}

// NormalizeEmail lowercases and trims an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StringValidation checks a string against length and pattern rules. Lengths count
// characters, matching VARCHAR(n) columns and the binding max= tag.
type StringValidation struct {
	Value          string
	MinLen         int
	MaxLen         int
	Pattern        *regexp.Regexp
	PatternMessage string
}

// NewStringValidation creates a new required string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern requires the value to match pattern, reporting message otherwise
func (v *StringValidation) WithPattern(pattern *regexp.Regexp, message string) *StringValidation {
	v.Pattern = pattern
	v.PatternMessage = message
	return v
}

// Validate returns the first failed rule as a user facing message, or "" when the value passes
func (v *StringValidation) Validate() string {
	if v.Value == "" {
		return "This field may not be blank."
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return fmt.Sprintf("Ensure this field has at least %d characters.", v.MinLen)
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return fmt.Sprintf("Ensure this field has no more than %d characters.", v.MaxLen)
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return v.PatternMessage
	}

	return ""
}
