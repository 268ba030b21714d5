package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator_Validate(t *testing.T) {
	validator := NewEmailValidator()

	tests := []struct {
		name       string
		input      string
		valid      bool
		normalized string
	}{
		{
			name:       "simple address",
			input:      "john.smith@example.com",
			valid:      true,
			normalized: "john.smith@example.com",
		},
		{
			name:       "uppercase normalized to lowercase",
			input:      "John.Smith@Example.COM",
			valid:      true,
			normalized: "john.smith@example.com",
		},
		{
			name:       "surrounding whitespace trimmed",
			input:      "  jane@example.org  ",
			valid:      true,
			normalized: "jane@example.org",
		},
		{
			name:       "plus tag",
			input:      "jane+roster@example.org",
			valid:      true,
			normalized: "jane+roster@example.org",
		},
		{
			name:       "bracketed ip domain",
			input:      "ops@[192.168.1.10]",
			valid:      true,
			normalized: "ops@[192.168.1.10]",
		},
		{
			name:       "quoted local part",
			input:      `"john smith"@example.com`,
			valid:      true,
			normalized: `"john smith"@example.com`,
		},
		{name: "empty", input: "", valid: false},
		{name: "whitespace only", input: "   ", valid: false},
		{name: "missing at sign", input: "john.example.com", valid: false},
		{name: "missing tld", input: "john@example", valid: false},
		{name: "double at", input: "john@@example.com", valid: false},
		{name: "space in local part", input: "john smith@example.com", valid: false},
		{name: "trailing dot domain", input: "john@example.com.", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(tt.input)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.input, result.OriginalValue)
			if tt.valid {
				assert.Equal(t, tt.normalized, result.Normalized)
			} else {
				assert.Empty(t, result.Normalized)
			}
		})
	}
}
