// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/database/schema"
	"github.com/manovapp/manov/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed favorite store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add bookmarks a novel. ON CONFLICT DO NOTHING makes re-adding a no-op.
func (repository *PostgresRepository) Add(context context.Context, userID, novelID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		schema.LibraryFavorite.Table,
		schema.LibraryFavorite.UserID,
		schema.LibraryFavorite.NovelID,
	)

	_, err := repository.db.Exec(context, query, userID, novelID)
	return dberr.Wrap(err, "add_favorite")
}

// Remove deletes a bookmark.
func (repository *PostgresRepository) Remove(context context.Context, userID, novelID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryFavorite.Table,
		schema.LibraryFavorite.UserID,
		schema.LibraryFavorite.NovelID,
	)

	result, err := repository.db.Exec(context, query, userID, novelID)
	if err != nil {
		return dberr.Wrap(err, "remove_favorite")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Favorite")
	}
	return nil
}

// ListByUser returns a user's bookmarks newest first with the total count.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error) {
	query := `
		SELECT f.userid, f.novelid, f.createdat,
			COUNT(*) OVER() AS total_count
		FROM library.favorite f
		WHERE f.userid = $1
		ORDER BY f.createdat DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	var favorites []*Favorite
	var totalCount int

	for rows.Next() {
		f := &Favorite{}
		if err := rows.Scan(&f.UserID, &f.NovelID, &f.CreatedAt, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_favorite")
		}
		favorites = append(favorites, f)
	}

	return favorites, totalCount, nil
}
