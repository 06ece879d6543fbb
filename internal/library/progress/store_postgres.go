// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/database/schema"
	"github.com/manovapp/manov/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed progress store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert records the user's last-read chapter, replacing any previous
// position for the same (userid, novelid) pair.
func (repository *PostgresRepository) Upsert(context context.Context, p *Progress) error {
	query := `
		INSERT INTO library.readingprogress (userid, novelid, chapterid)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid, novelid)
		DO UPDATE SET chapterid = EXCLUDED.chapterid, updatedat = NOW()
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query, p.UserID, p.NovelID, p.ChapterID).Scan(&p.UpdatedAt)
	return dberr.Wrap(err, "upsert_reading_progress")
}

// Find returns the user's position in a novel.
func (repository *PostgresRepository) Find(context context.Context, userID, novelID string) (*Progress, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.NovelID,
		schema.LibraryReadingProgress.ChapterID,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.NovelID,
	)

	p := &Progress{}
	err := repository.db.QueryRow(context, query, userID, novelID).Scan(
		&p.UserID, &p.NovelID, &p.ChapterID, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading progress")
		}
		return nil, dberr.Wrap(err, "find_reading_progress")
	}
	return p, nil
}

// ListByUser returns a user's positions, most recently updated first.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Progress, int, error) {
	query := `
		SELECT p.userid, p.novelid, p.chapterid, p.updatedat,
			COUNT(*) OVER() AS total_count
		FROM library.readingprogress p
		WHERE p.userid = $1
		ORDER BY p.updatedat DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reading_progress")
	}
	defer rows.Close()

	var positions []*Progress
	var totalCount int

	for rows.Next() {
		p := &Progress{}
		if err := rows.Scan(&p.UserID, &p.NovelID, &p.ChapterID, &p.UpdatedAt, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reading_progress")
		}
		positions = append(positions, p)
	}

	return positions, totalCount, nil
}

// Delete removes the user's position in a novel.
func (repository *PostgresRepository) Delete(context context.Context, userID, novelID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.NovelID,
	)

	result, err := repository.db.Exec(context, query, userID, novelID)
	if err != nil {
		return dberr.Wrap(err, "delete_reading_progress")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Reading progress")
	}
	return nil
}
