// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package rating manages community scores for novels and the derived average.

Each user holds at most one rating per novel, guarded by a unique
(userid, novelid) constraint. The novel's `averagerating` column is a
derived aggregate: every write recomputes it from the surviving rating
rows inside the same transaction, so it can never drift from its source
and becomes NULL again when the last rating is removed.
*/
package rating

import "time"

const (
	// MinScore and MaxScore bound the accepted integer score range.
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's score for one novel, with an optional review text.
type Rating struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	NovelID    string    `json:"novel_id"`
	Score      int       `json:"score"`
	ReviewText *string   `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// # Validation Field Identifiers

const (
	FieldScore   = "score"
	FieldNovelID = "novel_id"
	FieldReview  = "review_text"
)
