// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manovapp/manov/pkg/slug"
)

/*
TestFrom tests the full slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Martial Peak", "martial-peak"},
		{"already_slugged", "martial-peak", "martial-peak"},
		{"accents_stripped", "Épée à Café", "epee-a-cafe"},
		{"symbols_become_hyphens", "Sword & Sorcery: Vol. 2", "sword-sorcery-vol-2"},
		{"hyphen_runs_collapse", "a  --  b", "a-b"},
		{"leading_trailing_trimmed", "  Re:Zero  ", "re-zero"},
		{"digits_kept", "86 Eighty Six", "86-eighty-six"},
		{"cjk_only_yields_empty", "源", ""},
		{"mixed_cjk_and_ascii", "源 Origin", "origin"},
		{"symbols_only_yields_empty", "!!! ???", ""},
		{"empty_input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
