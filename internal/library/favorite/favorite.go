// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package favorite manages a user's bookmarked novels.

The (user, novel) pair is the identity; adding twice is a no-op rather
than an error, so clients can treat the add button as idempotent.
*/
package favorite

import "time"

// Favorite marks one novel as bookmarked by one user.
type Favorite struct {
	UserID    string    `json:"user_id"`
	NovelID   string    `json:"novel_id"`
	CreatedAt time.Time `json:"created_at"`
}
