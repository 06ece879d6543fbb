// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package language

import "time"

// Language represents a language usable for canonical content and
// translation overlays. Code is the primary key (BCP 47 style, e.g. "en",
// "zh", "pt-br"). Deactivating a language blocks new overlays but leaves
// existing rows untouched.
type Language struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"-"`
}
