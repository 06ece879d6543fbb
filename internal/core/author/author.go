// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package author

import "time"

// Author represents the original writer of a novel.
type Author struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NameRomanized *string    `json:"name_romanized"`
	Bio           *string    `json:"bio"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // Substring search against name and nameromanized
}

// Global field names for validation
const (
	FieldName          = "name"
	FieldNameRomanized = "name_romanized"
	FieldBio           = "bio"
)
