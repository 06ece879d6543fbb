// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestLockNovelRow_TakesRowLockBeforeRecompute pins the novel row lock both
rating transactions acquire before touching social.rating.

At READ COMMITTED the AVG statement of a blocked second writer keeps its
original snapshot and would miss the first writer's committed row; the
FOR UPDATE lock serializes the write-plus-recompute sections so each
recompute observes every prior commit.
*/
func TestLockNovelRow_TakesRowLockBeforeRecompute(t *testing.T) {
	assert.Contains(t, lockNovelRow, "FROM catalog.novel")
	assert.Contains(t, lockNovelRow, "FOR UPDATE")
}
