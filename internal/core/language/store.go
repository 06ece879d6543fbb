// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package language

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLanguages(context context.Context) ([]*Language, error)
	GetLanguageByCode(context context.Context, code string) (*Language, error)
	Create(context context.Context, l *Language) error
	Update(context context.Context, l *Language) error
}
