package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Onboarding form
	"FullName":   "Name",
	"Role":       "Target role",
	"Experience": "Experience",
	"Focus":      "Focus areas",
	"Strengths":  "Strengths",
	"Challenges": "Challenges",

	// Auth
	"Email":        "Email",
	"Password":     "Password",
	"RefreshToken": "Refresh token",
}

// PasswordRuleMessage is the message shown whenever strong_password fails.
const PasswordRuleMessage = "Password must be at least 8 characters and include uppercase, lowercase, number, and symbol."

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s needs at least %s item(s)", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation (. ' - /)", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)
	case "strong_password":
		return PasswordRuleMessage
	case "known_role", "known_experience", "known_topic":
		return fmt.Sprintf("%s has an unsupported value %q", label, e.Value())
	case "prose":
		return fmt.Sprintf("%s needs 2–3 sentences (at least ~%d characters)", label, MinProseLength)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	// slice elements are reported as Field[i]
	if i := strings.IndexByte(fieldName, '['); i > 0 {
		fieldName = fieldName[:i]
	}
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
