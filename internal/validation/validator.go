package validation

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rivo/uniseg"
)

// maxCharsTag limits a string to N user-visible characters. validator's own
// max=N counts code points, so "e" plus a combining accent would count twice.
const maxCharsTag = "maxchars"

// Validator provides common validation utilities on top of go-playground's
// validator. String lengths are counted in grapheme clusters.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	validate := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation(maxCharsTag, maxChars)
	return &Validator{
		validate: validate,
	}
}

// IsPresent reports whether s has at least one character. Whitespace counts.
func (v *Validator) IsPresent(s string) bool {
	return v.validate.Var(s, "required") == nil
}

// IsWithinMaxLength reports whether s has at most max characters.
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return v.validate.Var(s, fmt.Sprintf("%s=%d", maxCharsTag, max)) == nil
}

// CharacterCount returns the number of user-visible characters in s.
func CharacterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func maxChars(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return CharacterCount(fl.Field().String()) <= limit
}
