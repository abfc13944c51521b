package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Cedula pattern - 6 to 10 digits, no separators
	CedulaPattern = `^\d{6,10}$`

	// Phone pattern - digits with optional leading +, spaces and dashes allowed
	PhonePattern = `^\+?[\d][\d \-]{5,19}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Cedula *regexp.Regexp
	Phone  *regexp.Regexp
}{
	Cedula: regexp.MustCompile(CedulaPattern),
	Phone:  regexp.MustCompile(PhonePattern),
}

// ValidCedula reports whether the identity number is well formed
func ValidCedula(cedula string) bool {
	return NewStringValidation(cedula).
		WithPattern(CompiledPatterns.Cedula).
		Validate()
}

// ValidPhone reports whether the phone number is well formed. An empty
// phone is accepted, the field is optional.
func ValidPhone(phone string) bool {
	return NewStringValidation(phone).
		WithRequired(false).
		WithPattern(CompiledPatterns.Phone).
		Validate()
}

// StringValidation is a builder for string field checks
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
