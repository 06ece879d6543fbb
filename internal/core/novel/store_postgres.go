// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel

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

// NewPostgresRepository constructs a PostgreSQL backed novel store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// novelColumns is the canonical SELECT column list for catalog.novel.
const novelColumns = `
	n.id, n.authorid, n.title, n.titletranslated, n.synopsis, n.synopsistranslated,
	n.slug, n.originallanguage, n.coverurl, n.sourceurl, n.publicationstatus,
	n.translationstatus, n.genretags, n.totalchapters, n.averagerating,
	n.isactive, n.firstpublishedat, n.createdat, n.updatedat`

// scanNovel hydrates one row into a [Novel]. The row shape must match
// [novelColumns] (plus any trailing targets the caller appends).
func scanNovel(row pgx.Row, extra ...any) (*Novel, error) {
	n := &Novel{}
	targets := []any{
		&n.ID, &n.AuthorID, &n.Title, &n.TitleTranslated, &n.Synopsis, &n.SynopsisTranslated,
		&n.Slug, &n.OriginalLanguage, &n.CoverURL, &n.SourceURL, &n.PublicationStatus,
		&n.TranslationStatus, &n.GenreTags, &n.TotalChapters, &n.AverageRating,
		&n.IsActive, &n.FirstPublishedAt, &n.CreatedAt, &n.UpdatedAt,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return n, nil
}

/*
List returns a filtered, paginated slice of novels and the total count.

Description: Uses COUNT(*) OVER() so the total matching count comes back
with the page itself instead of a second round-trip.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Novel, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + novelColumns + `,
			COUNT(*) OVER() AS total_count
		FROM catalog.novel n
		WHERE 1=1
	`)

	if filter.OnlyActive {
		queryBuilder.WriteString(" AND n.isactive = true")
	}
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND n.authorid = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}
	if filter.OriginalLanguage != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND n.originallanguage = $%d", argID))
		args = append(args, filter.OriginalLanguage)
		argID++
	}
	if filter.PublicationStatus != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND n.publicationstatus = $%d", argID))
		args = append(args, filter.PublicationStatus)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY n.createdat DESC, n.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_novels")
	}
	defer rows.Close()

	var novels []*Novel
	var totalCount int

	for rows.Next() {
		n, err := scanNovel(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_novel")
		}
		novels = append(novels, n)
	}

	return novels, totalCount, nil
}

// FindByID returns the novel with the given primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Novel, error) {
	query := `SELECT ` + novelColumns + ` FROM catalog.novel n WHERE n.id = $1`

	n, err := scanNovel(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Novel")
		}
		return nil, dberr.Wrap(err, "find_novel")
	}
	return n, nil
}

// FindBySlug returns the novel behind a public URL slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Novel, error) {
	query := `SELECT ` + novelColumns + ` FROM catalog.novel n WHERE n.slug = $1`

	n, err := scanNovel(repository.db.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Novel")
		}
		return nil, dberr.Wrap(err, "find_novel_by_slug")
	}
	return n, nil
}

// slugExistsQuery probes for a slug held by another novel. The exclude
// parameter is text (empty on creation, a UUID during regeneration), so the
// uuid id column is cast to text for the comparison; comparing the bare
// column against $2 would fail to prepare once the empty-string arm fixes
// the parameter's type as text.
var slugExistsQuery = fmt.Sprintf(`
	SELECT EXISTS (
		SELECT 1 FROM %s WHERE %s = $1 AND ($2 = '' OR %s::text <> $2)
	)
`, schema.CatalogNovel.Table, schema.CatalogNovel.Slug, schema.CatalogNovel.ID)

/*
SlugExists reports whether another novel already holds a slug.

Description: The excludeID parameter keeps a novel from colliding with its
own row during slug regeneration; an empty excludeID matches everything.
*/
func (repository *PostgresRepository) SlugExists(context context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	if err := repository.db.QueryRow(context, slugExistsQuery, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "slug_exists")
	}
	return exists, nil
}

/*
Create inserts a new novel row.

Description: Errors are returned unwrapped. The service distinguishes the
slug unique violation (expected under concurrent creation, retried with a
fresh slug) from everything else, so classification happens one level up.
*/
func (repository *PostgresRepository) Create(context context.Context, n *Novel) error {
	query := `
		INSERT INTO catalog.novel (
			id, authorid, title, titletranslated, synopsis, synopsistranslated,
			slug, originallanguage, coverurl, sourceurl, publicationstatus,
			translationstatus, genretags, totalchapters, isactive, firstpublishedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		n.ID, n.AuthorID, n.Title, n.TitleTranslated, n.Synopsis, n.SynopsisTranslated,
		n.Slug, n.OriginalLanguage, n.CoverURL, n.SourceURL, n.PublicationStatus,
		n.TranslationStatus, n.GenreTags, n.TotalChapters, true, n.FirstPublishedAt,
	).Scan(&n.CreatedAt, &n.UpdatedAt)

	return err
}

// Update overwrites the mutable columns of an existing novel. The service
// hands in a fully hydrated record, so this is a whole-row write rather
// than the dynamic PATCH builder used for list filters.
func (repository *PostgresRepository) Update(context context.Context, n *Novel) error {
	query := `
		UPDATE catalog.novel
		SET authorid = $1, title = $2, titletranslated = $3, synopsis = $4,
			synopsistranslated = $5, slug = $6, originallanguage = $7,
			coverurl = $8, sourceurl = $9, publicationstatus = $10,
			translationstatus = $11, genretags = $12, totalchapters = $13,
			isactive = $14, firstpublishedat = $15, updatedat = NOW()
		WHERE id = $16
	`

	result, err := repository.db.Exec(context, query,
		n.AuthorID, n.Title, n.TitleTranslated, n.Synopsis,
		n.SynopsisTranslated, n.Slug, n.OriginalLanguage,
		n.CoverURL, n.SourceURL, n.PublicationStatus,
		n.TranslationStatus, n.GenreTags, n.TotalChapters,
		n.IsActive, n.FirstPublishedAt, n.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_novel")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Novel")
	}
	return nil
}

// Delete removes a novel. Dependent rows (chapters, translations, ratings,
// comments, favorites, reading progress) go with it via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogNovel.Table, schema.CatalogNovel.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_novel")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Novel")
	}
	return nil
}

// # Translation Overlays

/*
FindTranslation returns the overlay for (novelID, languageCode) joined
with the language's active flag, so resolution can exclude overlays whose
language has been deactivated without a second lookup.
*/
func (repository *PostgresRepository) FindTranslation(context context.Context, novelID, languageCode string) (*Translation, bool, error) {
	query := `
		SELECT t.id, t.novelid, t.languagecode, t.title, t.synopsis,
			t.createdat, t.updatedat, l.isactive
		FROM catalog.noveltranslation t
		JOIN ref.language l ON l.code = t.languagecode
		WHERE t.novelid = $1 AND t.languagecode = $2
	`

	t := &Translation{}
	var active bool
	err := repository.db.QueryRow(context, query, novelID, languageCode).Scan(
		&t.ID, &t.NovelID, &t.LanguageCode, &t.Title, &t.Synopsis,
		&t.CreatedAt, &t.UpdatedAt, &active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperr.NotFound("Translation")
		}
		return nil, false, dberr.Wrap(err, "find_novel_translation")
	}
	return t, active, nil
}

// ListTranslations returns all overlays for a novel ordered by language code.
func (repository *PostgresRepository) ListTranslations(context context.Context, novelID string) ([]*Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogNovelTranslation.ID,
		schema.CatalogNovelTranslation.NovelID,
		schema.CatalogNovelTranslation.LanguageCode,
		schema.CatalogNovelTranslation.Title,
		schema.CatalogNovelTranslation.Synopsis,
		schema.CatalogNovelTranslation.CreatedAt,
		schema.CatalogNovelTranslation.UpdatedAt,
		schema.CatalogNovelTranslation.Table,
		schema.CatalogNovelTranslation.NovelID,
		schema.CatalogNovelTranslation.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, novelID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_novel_translations")
	}
	defer rows.Close()

	var translations []*Translation
	for rows.Next() {
		t := &Translation{}
		err := rows.Scan(&t.ID, &t.NovelID, &t.LanguageCode, &t.Title, &t.Synopsis, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_novel_translation")
		}
		translations = append(translations, t)
	}

	return translations, nil
}

// UpsertTranslation creates or replaces the overlay for the row's
// (novelid, languagecode) pair. The unique constraint on the pair makes
// ON CONFLICT the natural write path.
func (repository *PostgresRepository) UpsertTranslation(context context.Context, t *Translation) error {
	query := `
		INSERT INTO catalog.noveltranslation (id, novelid, languagecode, title, synopsis)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (novelid, languagecode)
		DO UPDATE SET title = EXCLUDED.title, synopsis = EXCLUDED.synopsis, updatedat = NOW()
	`

	_, err := repository.db.Exec(context, query, t.ID, t.NovelID, t.LanguageCode, t.Title, t.Synopsis)
	return dberr.Wrap(err, "upsert_novel_translation")
}

// DeleteTranslation removes the overlay for (novelID, languageCode).
func (repository *PostgresRepository) DeleteTranslation(context context.Context, novelID, languageCode string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogNovelTranslation.Table,
		schema.CatalogNovelTranslation.NovelID,
		schema.CatalogNovelTranslation.LanguageCode,
	)

	result, err := repository.db.Exec(context, query, novelID, languageCode)
	if err != nil {
		return dberr.Wrap(err, "delete_novel_translation")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Translation")
	}
	return nil
}
