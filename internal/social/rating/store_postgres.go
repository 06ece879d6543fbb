// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating

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

// NewPostgresRepository constructs a PostgreSQL backed rating store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// lockNovelRow serializes the write-plus-recompute sections of concurrent
// rating transactions on the same novel. Without it, at READ COMMITTED, a
// second writer's AVG statement can keep a snapshot that predates the first
// writer's commit and overwrite the average with a partial result.
const lockNovelRow = `SELECT id FROM catalog.novel WHERE id = $1 FOR UPDATE`

/*
Upsert writes the user's rating and recomputes the novel's average.

Description: The (userid, novelid) unique constraint turns the insert into
an UPDATE via ON CONFLICT, so a re-rating replaces the old score in place.
The recompute statement and the write share one transaction, entered only
after locking the novel row so concurrent recomputes cannot interleave; a
failure in either statement rolls both back, keeping `averagerating`
consistent with the rating rows at all times.
*/
func (repository *PostgresRepository) Upsert(context context.Context, r *Rating) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_upsert_rating")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, lockNovelRow, r.NovelID); err != nil {
		return dberr.Wrap(err, "lock_novel_for_rating")
	}

	upsert := `
		INSERT INTO social.rating (id, userid, novelid, score, reviewtext)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (userid, novelid)
		DO UPDATE SET score = EXCLUDED.score, reviewtext = EXCLUDED.reviewtext, updatedat = NOW()
		RETURNING id, createdat, updatedat
	`

	err = transaction.QueryRow(context, upsert,
		r.ID, r.UserID, r.NovelID, r.Score, r.ReviewText,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_rating")
	}

	if err := recomputeAverage(context, transaction, r.NovelID); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_upsert_rating")
}

/*
Delete removes the user's rating and recomputes the novel's average.

Description: When the deleted row was the novel's last rating, the AVG
subquery yields NULL and `averagerating` is cleared rather than left at a
stale value.
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, novelID string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_rating")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, lockNovelRow, novelID); err != nil {
		return dberr.Wrap(err, "lock_novel_for_rating")
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialRating.Table,
		schema.SocialRating.UserID,
		schema.SocialRating.NovelID,
	)

	result, err := transaction.Exec(context, del, userID, novelID)
	if err != nil {
		return dberr.Wrap(err, "delete_rating")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Rating")
	}

	if err := recomputeAverage(context, transaction, novelID); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_rating")
}

// recomputeAverage rewrites the novel's derived average from the surviving
// rating rows. Runs inside the caller's transaction.
func recomputeAverage(context context.Context, transaction pgx.Tx, novelID string) error {
	query := `
		UPDATE catalog.novel
		SET averagerating = (
			SELECT ROUND(AVG(score)::numeric, 1)
			FROM social.rating
			WHERE novelid = $1
		)
		WHERE id = $1
	`

	if _, err := transaction.Exec(context, query, novelID); err != nil {
		return dberr.Wrap(err, "recompute_average_rating")
	}
	return nil
}

// ListByNovel returns a novel's ratings newest first with the total count.
func (repository *PostgresRepository) ListByNovel(context context.Context, novelID string, limit, offset int) ([]*Rating, int, error) {
	query := `
		SELECT r.id, r.userid, r.novelid, r.score, r.reviewtext,
			r.createdat, r.updatedat,
			COUNT(*) OVER() AS total_count
		FROM social.rating r
		WHERE r.novelid = $1
		ORDER BY r.createdat DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, novelID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_ratings")
	}
	defer rows.Close()

	var ratings []*Rating
	var totalCount int

	for rows.Next() {
		r := &Rating{}
		err := rows.Scan(
			&r.ID, &r.UserID, &r.NovelID, &r.Score, &r.ReviewText,
			&r.CreatedAt, &r.UpdatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_rating")
		}
		ratings = append(ratings, r)
	}

	return ratings, totalCount, nil
}

// FindByUser returns the rating a user gave a novel.
func (repository *PostgresRepository) FindByUser(context context.Context, userID, novelID string) (*Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.SocialRating.ID,
		schema.SocialRating.UserID,
		schema.SocialRating.NovelID,
		schema.SocialRating.Score,
		schema.SocialRating.ReviewText,
		schema.SocialRating.CreatedAt,
		schema.SocialRating.UpdatedAt,
		schema.SocialRating.Table,
		schema.SocialRating.UserID,
		schema.SocialRating.NovelID,
	)

	r := &Rating{}
	err := repository.db.QueryRow(context, query, userID, novelID).Scan(
		&r.ID, &r.UserID, &r.NovelID, &r.Score, &r.ReviewText,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Rating")
		}
		return nil, dberr.Wrap(err, "find_rating")
	}
	return r, nil
}
