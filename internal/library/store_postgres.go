// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/animetrack/internal/anime"
	"github.com/taibuivan/animetrack/internal/platform/database/schema"
	"github.com/taibuivan/animetrack/internal/platform/dberr"
	"github.com/taibuivan/animetrack/pkg/pointer"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new library store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const (
	membershipAlias = "m"
	animeAlias      = "a"
)

// joinedProjection selects membership columns followed by the LEFT JOINed anime columns.
var joinedProjection = strings.Join(append(
	schema.Qualify(membershipAlias, schema.LibraryMembership.Columns()),
	schema.Qualify(animeAlias, schema.CatalogAnime.Columns())...,
), ", ")

// joinedFrom builds "<source> m LEFT JOIN catalog.anime a ON ...".
func joinedFrom(source string) string {
	return fmt.Sprintf("%s %s LEFT JOIN %s %s ON %s.%s = %s.%s",
		source, membershipAlias,
		schema.CatalogAnime.Table, animeAlias,
		animeAlias, schema.CatalogAnime.ID,
		membershipAlias, schema.LibraryMembership.AnimeID,
	)
}

// scanMembership hydrates one row of [joinedProjection].
//
// Anime columns are scanned into nullable holders because the join may not resolve.
func scanMembership(row pgx.Row) (*Membership, error) {
	var (
		membership Membership
		category   string
		rating     *int32

		animeID, slug, title, imageURL, description *string
		genres                                       []string
		animeRating                                  *float64
		releaseDate, createdAt, updatedAt            *time.Time
	)

	err := row.Scan(
		&membership.ID, &membership.UserID, &membership.AnimeID, &category, &membership.Progress,
		&rating, &membership.Notes, &membership.CreatedAt, &membership.UpdatedAt,
		&animeID, &slug, &title, &imageURL, &genres, &animeRating, &description, &releaseDate,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	membership.Category = Category(category)
	if rating != nil {
		value := int(*rating)
		membership.Rating = &value
	}

	if animeID != nil {
		membership.Anime = &anime.Anime{
			ID:          *animeID,
			Slug:        pointer.Val(slug),
			Title:       pointer.Val(title),
			ImageURL:    pointer.Val(imageURL),
			Genres:      genres,
			Rating:      animeRating,
			Description: pointer.Val(description),
			ReleaseDate: releaseDate,
			CreatedAt:   pointer.Val(createdAt),
			UpdatedAt:   pointer.Val(updatedAt),
		}
		if membership.Anime.Genres == nil {
			membership.Anime.Genres = []string{}
		}
	}

	return &membership, nil
}

// # Memberships

/*
ListMemberships loads every membership of a user LEFT JOINed with its title.
*/
func (store *PostgresStore) ListMemberships(context context.Context, userID string) ([]*Membership, error) {
	table := schema.LibraryMembership
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s.%s = $1 ORDER BY %s.%s DESC`,
		joinedProjection, joinedFrom(table.Table),
		membershipAlias, table.UserID,
		membershipAlias, table.UpdatedAt,
	)

	rows, err := store.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_memberships")
	}
	defer rows.Close()

	var result []*Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_membership")
		}
		result = append(result, membership)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_memberships")
	}

	return result, nil
}

/*
FindMembership loads the membership of a user for one title.
*/
func (store *PostgresStore) FindMembership(context context.Context, userID, animeID string) (*Membership, error) {
	table := schema.LibraryMembership
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s.%s = $1 AND %s.%s = $2`,
		joinedProjection, joinedFrom(table.Table),
		membershipAlias, table.UserID,
		membershipAlias, table.AnimeID,
	)

	membership, err := scanMembership(store.pool.QueryRow(context, query, userID, animeID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_membership")
	}

	return membership, nil
}

/*
InsertMembership writes a membership and returns it joined with its title in one round trip.
*/
func (store *PostgresStore) InsertMembership(context context.Context, membership *Membership) (*Membership, error) {
	table := schema.LibraryMembership
	query := fmt.Sprintf(`
		WITH written AS (
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s
		)
		SELECT %s FROM %s`,
		table.Table,
		table.ID, table.UserID, table.AnimeID, table.Category, table.Progress, table.Rating, table.Notes,
		strings.Join(table.Columns(), ", "),
		joinedProjection, joinedFrom("written"),
	)

	inserted, err := scanMembership(store.pool.QueryRow(context, query,
		membership.ID, membership.UserID, membership.AnimeID, string(membership.Category),
		membership.Progress, membership.Rating, membership.Notes,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "insert_membership")
	}

	return inserted, nil
}

/*
UpdateMembership applies the non-nil fields of patch and bumps updatedat.
*/
func (store *PostgresStore) UpdateMembership(context context.Context, userID, id string, patch Patch) (*Membership, error) {
	table := schema.LibraryMembership

	var (
		assignments = []string{fmt.Sprintf("%s = now()", table.UpdatedAt)}
		args        = []any{id, userID}
	)

	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Category != nil {
		set(table.Category, string(*patch.Category))
	}
	if patch.Progress != nil {
		set(table.Progress, *patch.Progress)
	}
	if patch.Rating != nil {
		set(table.Rating, *patch.Rating)
	}
	if patch.Notes != nil {
		set(table.Notes, *patch.Notes)
	}

	query := fmt.Sprintf(`
		WITH written AS (
			UPDATE %s SET %s
			WHERE %s = $1 AND %s = $2
			RETURNING %s
		)
		SELECT %s FROM %s`,
		table.Table, strings.Join(assignments, ", "),
		table.ID, table.UserID,
		strings.Join(table.Columns(), ", "),
		joinedProjection, joinedFrom("written"),
	)

	updated, err := scanMembership(store.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_membership")
	}

	return updated, nil
}

/*
DeleteMembership hard-deletes a membership owned by the user.
*/
func (store *PostgresStore) DeleteMembership(context context.Context, userID, id string) (bool, error) {
	table := schema.LibraryMembership
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.UserID)

	tag, err := store.pool.Exec(context, query, id, userID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_membership")
	}

	return tag.RowsAffected() > 0, nil
}

// # Favorites

/*
ListFavorites returns the marks of a user, newest first.
*/
func (store *PostgresStore) ListFavorites(context context.Context, userID string) ([]*Favorite, error) {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		table.UserID, table.AnimeID, table.CreatedAt, table.Table, table.UserID, table.CreatedAt)

	rows, err := store.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	var result []*Favorite
	for rows.Next() {
		var favorite Favorite
		if err := rows.Scan(&favorite.UserID, &favorite.AnimeID, &favorite.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_favorite")
		}
		result = append(result, &favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_favorites")
	}

	return result, nil
}

/*
FindFavorite loads a single mark.
*/
func (store *PostgresStore) FindFavorite(context context.Context, userID, animeID string) (*Favorite, error) {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		table.UserID, table.AnimeID, table.CreatedAt, table.Table, table.UserID, table.AnimeID)

	var favorite Favorite
	err := store.pool.QueryRow(context, query, userID, animeID).
		Scan(&favorite.UserID, &favorite.AnimeID, &favorite.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_favorite")
	}

	return &favorite, nil
}

/*
InsertFavorite stores a mark.

A concurrent insert of the same mark is absorbed by the conflict clause, which
keeps the existing row and returns its timestamp.
*/
func (store *PostgresStore) InsertFavorite(context context.Context, favorite *Favorite) error {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`
		INSERT INTO %s AS existing (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = existing.%s
		RETURNING %s`,
		table.Table, table.UserID, table.AnimeID,
		table.UserID, table.AnimeID, table.CreatedAt, table.CreatedAt,
		table.CreatedAt,
	)

	if err := store.pool.QueryRow(context, query, favorite.UserID, favorite.AnimeID).Scan(&favorite.CreatedAt); err != nil {
		return dberr.Wrap(err, "insert_favorite")
	}

	return nil
}

/*
DeleteFavorite removes a mark.
*/
func (store *PostgresStore) DeleteFavorite(context context.Context, userID, animeID string) (bool, error) {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.UserID, table.AnimeID)

	tag, err := store.pool.Exec(context, query, userID, animeID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_favorite")
	}

	return tag.RowsAffected() > 0, nil
}
