// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestSlugExistsQuery_ExcludeComparesAsText pins the slug probe's exclude
comparison to the text cast on the uuid id column.

The exclude parameter arrives as text and is matched against the empty
string first, which fixes $2's type as text at prepare time. A bare
`id <> $2` would then be uuid <> text, an operator Postgres does not have,
and every slug probe would fail before execution.
*/
func TestSlugExistsQuery_ExcludeComparesAsText(t *testing.T) {
	assert.Contains(t, slugExistsQuery, "($2 = '' OR id::text <> $2)")
	assert.NotContains(t, strings.ReplaceAll(slugExistsQuery, "id::text", ""), "id <> $2")
}
