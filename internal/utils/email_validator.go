package utils

import (
	"regexp"
	"strings"
)

// Accepts local@domain where the domain is either dot-separated labels ending
// in a 2+ letter TLD or a bracketed IPv4 literal. Quoted local parts pass.
var emailPattern = regexp.MustCompile(
	`^(([^<>()\[\],;:\s@"]+(\.[^<>()\[\],;:\s@"]+)*)|(".+"))@` +
		`((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`,
)

type EmailValidator struct{}

type EmailValidationResult struct {
	IsValid       bool
	Normalized    string
	OriginalValue string
}

func NewEmailValidator() *EmailValidator {
	return &EmailValidator{}
}

func (v *EmailValidator) Validate(input string) EmailValidationResult {
	result := EmailValidationResult{OriginalValue: input}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return result
	}

	if !emailPattern.MatchString(trimmed) {
		return result
	}

	result.IsValid = true
	result.Normalized = strings.ToLower(trimmed)
	return result
}
