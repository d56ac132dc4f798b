// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "GranFondo Yalova", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "ayse").
		MinLen("username", "ayse", 3).
		MaxLen("username", "ayse", 10).
		Email("email", "ayse@granfondoyalova.com").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Username checks the account name format rule.
*/
func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		isValid  bool
	}{
		{"simple", "yalova_admin", true},
		{"digits", "mod2026", true},
		{"too_short", "ab", false},
		{"spaces", "admin user", false},
		{"turkish_letters", "yönetici", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.username)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Date checks the YYYY-MM-DD format rule.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		isValid bool
	}{
		{"iso_date", "2026-05-17", true},
		{"slashes", "17/05/2026", false},
		{"short_year", "26-05-17", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("date", tt.date)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Phone checks the Turkish mobile number rule.
*/
func TestValidator_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		isValid bool
	}{
		{"with_country_code", "+905321234567", true},
		{"with_leading_zero", "05321234567", true},
		{"bare", "5321234567", true},
		{"landline_prefix", "02121234567", false},
		{"too_short", "532123", false},
		{"letters", "532abc4567", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Phone("phone", tt.phone)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_FullName checks the letters-and-spaces rule, including
Turkish characters.
*/
func TestValidator_FullName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		isValid  bool
	}{
		{"ascii", "Mehmet Demir", true},
		{"turkish", "Gül Şahin", true},
		{"dotless_i", "Yıldız Çelik", true},
		{"digits", "Mehmet 2", false},
		{"markup", "<b>Mehmet</b>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.FullName("full_name", tt.fullName)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks the enum membership rule.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("category", "short", "short", "long")
	assert.False(t, v.HasErrors())

	v2 := &validate.Validator{}
	v2.OneOf("category", "medium", "short", "long")
	assert.True(t, v2.HasErrors())
}

/*
TestValidator_Range checks the integer bounds rule.
*/
func TestValidator_Range(t *testing.T) {
	v := &validate.Validator{}
	v.Range("birth_year", 1990, 1936, 2008)
	assert.False(t, v.HasErrors())

	v2 := &validate.Validator{}
	v2.Range("birth_year", 2020, 1936, 2008)
	assert.True(t, v2.HasErrors())
}
