// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfyalova/granfondo/pkg/slug"
)

/*
TestFrom verifies slug generation across ASCII, accented, and Turkish
input, plus hyphen cleanup edge cases.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple ascii", "GranFondo Yalova 2026", "granfondo-yalova-2026"},
		{"punctuation", "Etap 3 / 5!", "etap-3-5"},
		{"accents removed", "Café É É", "cafe-e-e"},
		{"turkish letters", "Ödül Töreni", "odul-toreni"},
		{"turkish g and s", "Güzergah Değişikliği", "guzergah-degisikligi"},
		{"dotted capital i", "İstanbul Startı", "istanbul-start"},
		{"multiple separators", "a  --  b", "a-b"},
		{"leading trailing junk", "  --Merhaba--  ", "merhaba"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
