// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package chapter

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

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListByNovel returns a novel's chapters and the total matching count.

Description: Uses COUNT(*) OVER() to retrieve the total without a second
round-trip. Canonical content is deliberately left out of the column list;
chapter bodies can be large and the roster only needs metadata.
*/
func (repository *PostgresRepository) ListByNovel(context context.Context, novelID string, filter Filter, limit, offset int) ([]*Chapter, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT
			c.id, c.novelid, c.chapternumber, c.title, c.wordcount, c.ispublished,
			c.publishedat, c.translatornotes, c.sourceurl, c.readingtime,
			c.createdat, c.updatedat,
			COUNT(*) OVER() AS total_count
		FROM catalog.chapter c
		WHERE c.novelid = $1
	`)
	args = append(args, novelID)
	argID++

	if filter.OnlyPublished {
		queryBuilder.WriteString(" AND c.ispublished = true")
	}

	sortDir := "ASC"
	if strings.ToLower(filter.SortDir) == "desc" {
		sortDir = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.chapternumber %s", sortDir))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		chapter := &Chapter{}
		err := rows.Scan(
			&chapter.ID, &chapter.NovelID, &chapter.Number, &chapter.Title,
			&chapter.WordCount, &chapter.IsPublished, &chapter.PublishedAt,
			&chapter.TranslatorNotes, &chapter.SourceURL, &chapter.ReadingTime,
			&chapter.CreatedAt, &chapter.UpdatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, totalCount, nil
}

// FindByID returns the fully hydrated chapter, canonical content included.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := `
		SELECT
			c.id, c.novelid, c.chapternumber, c.title, c.content, c.wordcount,
			c.ispublished, c.publishedat, c.translatornotes, c.sourceurl,
			c.readingtime, c.createdat, c.updatedat
		FROM catalog.chapter c
		WHERE c.id = $1
	`

	chapter := &Chapter{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&chapter.ID, &chapter.NovelID, &chapter.Number, &chapter.Title,
		&chapter.Content, &chapter.WordCount, &chapter.IsPublished,
		&chapter.PublishedAt, &chapter.TranslatorNotes, &chapter.SourceURL,
		&chapter.ReadingTime, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, dberr.Wrap(err, "find_chapter")
	}
	return chapter, nil
}

/*
Create persists a new chapter inside a single transaction.

Description: The parent novel's chapter counter is bumped in the same
transaction so the derived count never drifts from the chapter rows. The
unique (novelid, chapternumber) constraint maps to a Conflict through
[dberr.Wrap].
*/
func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_chapter")
	}
	defer transaction.Rollback(context)

	insert := `
		INSERT INTO catalog.chapter (
			id, novelid, chapternumber, title, content, wordcount,
			ispublished, publishedat, translatornotes, sourceurl, readingtime
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING createdat, updatedat
	`

	err = transaction.QueryRow(context, insert,
		chapter.ID, chapter.NovelID, chapter.Number, chapter.Title,
		chapter.Content, chapter.WordCount, chapter.IsPublished,
		chapter.PublishedAt, chapter.TranslatorNotes, chapter.SourceURL,
		chapter.ReadingTime,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("Chapter number already exists for this novel")
		}
		return dberr.Wrap(err, "create_chapter")
	}

	counter := fmt.Sprintf(`UPDATE %s SET %s = COALESCE(%s, 0) + 1 WHERE %s = $1`,
		schema.CatalogNovel.Table,
		schema.CatalogNovel.TotalChapters,
		schema.CatalogNovel.TotalChapters,
		schema.CatalogNovel.ID,
	)
	if _, err := transaction.Exec(context, counter, chapter.NovelID); err != nil {
		return dberr.Wrap(err, "bump_chapter_counter")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_chapter")
}

// Update overwrites the mutable columns of an existing chapter.
func (repository *PostgresRepository) Update(context context.Context, chapter *Chapter) error {
	query := `
		UPDATE catalog.chapter
		SET chapternumber = $1, title = $2, content = $3, wordcount = $4,
			ispublished = $5, publishedat = $6, translatornotes = $7,
			sourceurl = $8, readingtime = $9, updatedat = NOW()
		WHERE id = $10
	`

	result, err := repository.db.Exec(context, query,
		chapter.Number, chapter.Title, chapter.Content, chapter.WordCount,
		chapter.IsPublished, chapter.PublishedAt, chapter.TranslatorNotes,
		chapter.SourceURL, chapter.ReadingTime, chapter.ID,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("Chapter number already exists for this novel")
		}
		return dberr.Wrap(err, "update_chapter")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

/*
Delete removes a chapter and decrements the parent's chapter counter in
one transaction. Translation overlays cascade at the constraint level.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_chapter")
	}
	defer transaction.Rollback(context)

	var novelID string
	err = transaction.QueryRow(context,
		`DELETE FROM catalog.chapter WHERE id = $1 RETURNING novelid`, id,
	).Scan(&novelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return dberr.Wrap(err, "delete_chapter")
	}

	counter := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(COALESCE(%s, 0) - 1, 0) WHERE %s = $1`,
		schema.CatalogNovel.Table,
		schema.CatalogNovel.TotalChapters,
		schema.CatalogNovel.TotalChapters,
		schema.CatalogNovel.ID,
	)
	if _, err := transaction.Exec(context, counter, novelID); err != nil {
		return dberr.Wrap(err, "drop_chapter_counter")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_chapter")
}

// # Translation Overlays

// FindTranslation returns the overlay for (chapterID, languageCode) joined
// with the language's active flag.
func (repository *PostgresRepository) FindTranslation(context context.Context, chapterID, languageCode string) (*Translation, bool, error) {
	query := `
		SELECT t.id, t.chapterid, t.languagecode, t.title, t.content,
			t.createdat, t.updatedat, l.isactive
		FROM catalog.chaptertranslation t
		JOIN ref.language l ON l.code = t.languagecode
		WHERE t.chapterid = $1 AND t.languagecode = $2
	`

	t := &Translation{}
	var active bool
	err := repository.db.QueryRow(context, query, chapterID, languageCode).Scan(
		&t.ID, &t.ChapterID, &t.LanguageCode, &t.Title, &t.Content,
		&t.CreatedAt, &t.UpdatedAt, &active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperr.NotFound("Translation")
		}
		return nil, false, dberr.Wrap(err, "find_chapter_translation")
	}
	return t, active, nil
}

// ListTranslations returns overlay metadata for a chapter. Translated
// bodies stay out of the listing for the same weight reason as canonical
// content.
func (repository *PostgresRepository) ListTranslations(context context.Context, chapterID string) ([]*Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogChapterTranslation.ID,
		schema.CatalogChapterTranslation.ChapterID,
		schema.CatalogChapterTranslation.LanguageCode,
		schema.CatalogChapterTranslation.Title,
		schema.CatalogChapterTranslation.CreatedAt,
		schema.CatalogChapterTranslation.UpdatedAt,
		schema.CatalogChapterTranslation.Table,
		schema.CatalogChapterTranslation.ChapterID,
		schema.CatalogChapterTranslation.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapter_translations")
	}
	defer rows.Close()

	var translations []*Translation
	for rows.Next() {
		t := &Translation{}
		err := rows.Scan(&t.ID, &t.ChapterID, &t.LanguageCode, &t.Title, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter_translation")
		}
		translations = append(translations, t)
	}

	return translations, nil
}

// UpsertTranslation creates or replaces the overlay for the row's
// (chapterid, languagecode) pair.
func (repository *PostgresRepository) UpsertTranslation(context context.Context, t *Translation) error {
	query := `
		INSERT INTO catalog.chaptertranslation (id, chapterid, languagecode, title, content)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chapterid, languagecode)
		DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updatedat = NOW()
	`

	_, err := repository.db.Exec(context, query, t.ID, t.ChapterID, t.LanguageCode, t.Title, t.Content)
	return dberr.Wrap(err, "upsert_chapter_translation")
}

// DeleteTranslation removes the overlay for (chapterID, languageCode).
func (repository *PostgresRepository) DeleteTranslation(context context.Context, chapterID, languageCode string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogChapterTranslation.Table,
		schema.CatalogChapterTranslation.ChapterID,
		schema.CatalogChapterTranslation.LanguageCode,
	)

	result, err := repository.db.Exec(context, query, chapterID, languageCode)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter_translation")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Translation")
	}
	return nil
}
