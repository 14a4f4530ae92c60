// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/animetrack/internal/platform/database/schema"
	"github.com/taibuivan/animetrack/internal/platform/dberr"
	"github.com/taibuivan/animetrack/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the shared projection of catalog.anime in scan order.
var selectColumns = strings.Join(schema.CatalogAnime.Columns(), ", ")

// scanAnime hydrates one row produced by [selectColumns].
func scanAnime(row pgx.Row, extra ...any) (*Anime, error) {
	anime := &Anime{}
	destinations := []any{
		&anime.ID, &anime.Slug, &anime.Title, &anime.ImageURL, &anime.Genres,
		&anime.Rating, &anime.Description, &anime.ReleaseDate, &anime.CreatedAt, &anime.UpdatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	if anime.Genres == nil {
		anime.Genres = []string{}
	}
	return anime, nil
}

/*
FindByID retrieves a title from the catalog.anime table.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Anime, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogAnime.Table, schema.CatalogAnime.ID)

	anime, err := scanAnime(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_anime_by_id")
	}

	return anime, nil
}

/*
FindByIDs batch-loads titles with a single ANY($1) query.
*/
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Anime, error) {
	if len(ids) == 0 {
		return []*Anime{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		selectColumns, schema.CatalogAnime.Table, schema.CatalogAnime.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_anime_by_ids")
	}
	defer rows.Close()

	result := make([]*Anime, 0, len(ids))
	for rows.Next() {
		anime, err := scanAnime(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_anime")
		}
		result = append(result, anime)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_anime")
	}

	return result, nil
}

/*
List returns a page of titles ordered by title. The total is computed with a
window function so no separate COUNT query is needed.
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Anime, int, error) {
	var (
		where string
		args  []any
	)

	if len(filter.Genres) > 0 {
		where = fmt.Sprintf("WHERE %s @> $1", schema.CatalogAnime.Genres)
		args = append(args, filter.Genres)
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		%s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		selectColumns, schema.CatalogAnime.Table, where, schema.CatalogAnime.Title,
		len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_anime")
	}
	defer rows.Close()

	var (
		result = make([]*Anime, 0, params.Limit)
		total  int
	)
	for rows.Next() {
		anime, err := scanAnime(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_anime")
		}
		result = append(result, anime)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_anime")
	}

	return result, total, nil
}

/*
Upsert inserts a title or refreshes every mutable column on id conflict.
*/
func (repository *PostgresRepository) Upsert(context context.Context, anime *Anime) error {
	table := schema.CatalogAnime
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = now()
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Slug, table.Title, table.ImageURL, table.Genres, table.Rating, table.Description, table.ReleaseDate,
		table.ID,
		table.Slug, table.Slug, table.Title, table.Title, table.ImageURL, table.ImageURL, table.Genres, table.Genres,
		table.Rating, table.Rating, table.Description, table.Description, table.ReleaseDate, table.ReleaseDate,
		table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		anime.ID, anime.Slug, anime.Title, anime.ImageURL, anime.Genres,
		anime.Rating, anime.Description, anime.ReleaseDate,
	).Scan(&anime.CreatedAt, &anime.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_anime")
	}

	return nil
}
