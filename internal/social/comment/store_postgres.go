// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new comment node.
func (repository *PostgresRepository) Create(context context.Context, c *Comment) error {
	query := `
		INSERT INTO social.comment (id, userid, novelid, chapterid, parentid, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		c.ID, c.UserID, c.NovelID, c.ChapterID, c.ParentID, c.Content,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	return dberr.Wrap(err, "create_comment")
}

// FindByID returns the comment with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialComment.ID,
		schema.SocialComment.UserID,
		schema.SocialComment.NovelID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.ParentID,
		schema.SocialComment.Content,
		schema.SocialComment.IsEdited,
		schema.SocialComment.CreatedAt,
		schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table,
		schema.SocialComment.ID,
	)

	c := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.UserID, &c.NovelID, &c.ChapterID, &c.ParentID,
		&c.Content, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "find_comment")
	}
	return c, nil
}

// Update persists an edited body and the edited flag.
func (repository *PostgresRepository) Update(context context.Context, c *Comment) error {
	query := `
		UPDATE social.comment
		SET content = $1, isedited = $2, updatedat = NOW()
		WHERE id = $3
	`

	result, err := repository.db.Exec(context, query, c.Content, c.IsEdited, c.ID)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

/*
DeleteSubtree removes a comment and every descendant reply.

Description: A recursive CTE collects the node and its transitive replies,
and the DELETE consumes it — one statement, so the cascade is atomic
without an explicit transaction. The ON DELETE CASCADE constraint on
parentid backs this up at the schema level; the CTE keeps the removal
count observable for logging.
*/
func (repository *PostgresRepository) DeleteSubtree(context context.Context, id string) (int64, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM social.comment WHERE id = $1
			UNION ALL
			SELECT c.id
			FROM social.comment c
			JOIN subtree s ON c.parentid = s.id
		)
		DELETE FROM social.comment
		WHERE id IN (SELECT id FROM subtree)
	`

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_comment_subtree")
	}
	if result.RowsAffected() == 0 {
		return 0, apperr.NotFound("Comment")
	}
	return result.RowsAffected(), nil
}

// ListTopLevel returns a page of top-level comments for a novel or chapter
// target and the total top-level count.
func (repository *PostgresRepository) ListTopLevel(context context.Context, target Target, sort string, limit, offset int) ([]*Comment, int, error) {

	targetColumn := schema.SocialComment.NovelID
	if target.kind == targetChapter {
		targetColumn = schema.SocialComment.ChapterID
	}

	sortDir := "DESC"
	if sort == SortOldest {
		sortDir = "ASC"
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.id, c.userid, c.novelid, c.chapterid, c.parentid,
			c.content, c.isedited, c.createdat, c.updatedat,
			COUNT(*) OVER() AS total_count
		FROM social.comment c
		WHERE c.%s = $1 AND c.parentid IS NULL
		ORDER BY c.createdat %s, c.id %s
		LIMIT $2 OFFSET $3
	`, targetColumn, sortDir, sortDir))

	rows, err := repository.db.Query(context, queryBuilder.String(), target.id, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_top_level_comments")
	}
	defer rows.Close()

	var comments []*Comment
	var totalCount int

	for rows.Next() {
		c := &Comment{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.NovelID, &c.ChapterID, &c.ParentID,
			&c.Content, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, totalCount, nil
}

// ListReplies batch-fetches the immediate replies for a page of parents,
// oldest first, keyed by parent ID.
func (repository *PostgresRepository) ListReplies(context context.Context, parentIDs []string) (map[string][]*Comment, error) {
	query := `
		SELECT c.id, c.userid, c.novelid, c.chapterid, c.parentid,
			c.content, c.isedited, c.createdat, c.updatedat
		FROM social.comment c
		WHERE c.parentid = ANY($1)
		ORDER BY c.createdat ASC, c.id ASC
	`

	rows, err := repository.db.Query(context, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comment_replies")
	}
	defer rows.Close()

	replies := make(map[string][]*Comment, len(parentIDs))
	for rows.Next() {
		c := &Comment{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.NovelID, &c.ChapterID, &c.ParentID,
			&c.Content, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment_reply")
		}
		replies[*c.ParentID] = append(replies[*c.ParentID], c)
	}

	return replies, nil
}
