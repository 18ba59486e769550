package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, spaces, and common name punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// Symbols accepted by the signup password rule.
	passwordSymbolRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

	sentenceSplitRegex = regexp.MustCompile(`[.!?\n]+`)
)

const (
	MinPasswordLength = 8
	MinProseLength    = 40
	MinProseSentences = 2
	minSentenceLength = 4
)

// RegisterValidators registers the generic custom validators on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("strong_password", StrongPassword)
	_ = v.RegisterValidation("prose", Prose)
}

// RegisterOneOf registers tag as a validator accepting only the given values.
// Unlike the built-in oneof, values may contain spaces.
func RegisterOneOf(v *validator.Validate, tag string, allowed []string) {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		_, ok := set[val]
		return ok
	})
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// StrongPassword requires at least 8 characters with upper, lower, digit and symbol.
func StrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(pw string) bool {
	if len(pw) < MinPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit && passwordSymbolRegex.MatchString(pw)
}

// Prose validates free text that should read as a couple of sentences.
func Prose(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsProse(val)
}

// IsProse reports whether s has at least MinProseLength trimmed characters and
// MinProseSentences sentences.
func IsProse(s string) bool {
	t := strings.TrimSpace(s)
	return len([]rune(t)) >= MinProseLength && CountSentences(t) >= MinProseSentences
}

// CountSentences splits on runs of . ! ? and newlines and counts pieces of at
// least four characters after trimming.
func CountSentences(s string) int {
	n := 0
	for _, part := range sentenceSplitRegex.Split(s, -1) {
		if len([]rune(strings.TrimSpace(part))) >= minSentenceLength {
			n++
		}
	}
	return n
}
