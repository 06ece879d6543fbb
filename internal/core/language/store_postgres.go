// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manovapp/manov/internal/platform/database/schema"
	"github.com/manovapp/manov/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListLanguages(context context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefLanguage.Code,
		schema.RefLanguage.Name,
		schema.RefLanguage.NativeName,
		schema.RefLanguage.IsActive,
		schema.RefLanguage.Table,
		schema.RefLanguage.Code,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	var langs []*Language
	for rows.Next() {
		l := &Language{}
		if err := rows.Scan(&l.Code, &l.Name, &l.NativeName, &l.IsActive); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		langs = append(langs, l)
	}

	return langs, nil
}

func (repository *PostgresRepository) GetLanguageByCode(context context.Context, code string) (*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.RefLanguage.Code,
		schema.RefLanguage.Name,
		schema.RefLanguage.NativeName,
		schema.RefLanguage.IsActive,
		schema.RefLanguage.Table,
		schema.RefLanguage.Code,
	)

	l := &Language{}
	err := repository.db.QueryRow(context, query, code).Scan(&l.Code, &l.Name, &l.NativeName, &l.IsActive)
	return l, dberr.Wrap(err, "get_language")
}

func (repository *PostgresRepository) Create(context context.Context, l *Language) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4);
	`,
		schema.RefLanguage.Table,
		schema.RefLanguage.Code,
		schema.RefLanguage.Name,
		schema.RefLanguage.NativeName,
		schema.RefLanguage.IsActive,
	)

	_, err := repository.db.Exec(context, query, l.Code, l.Name, l.NativeName, l.IsActive)
	return dberr.Wrap(err, "create_language")
}

func (repository *PostgresRepository) Update(context context.Context, l *Language) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3
		WHERE %s = $4;
	`,
		schema.RefLanguage.Table,
		schema.RefLanguage.Name,
		schema.RefLanguage.NativeName,
		schema.RefLanguage.IsActive,
		schema.RefLanguage.Code,
	)

	_, err := repository.db.Exec(context, query, l.Name, l.NativeName, l.IsActive, l.Code)
	return dberr.Wrap(err, "update_language")
}
