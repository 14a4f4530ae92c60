// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"

	"github.com/taibuivan/animetrack/internal/anime"
)

// # Repository Contracts

// FavoriteStore persists favorite marks.
type FavoriteStore interface {
	/*
		ListFavorites returns every mark of a user, newest first, without catalog metadata.
	*/
	ListFavorites(context context.Context, userID string) ([]*Favorite, error)

	/*
		FindFavorite returns a single mark.

		Returns:
		  - error: apperr.NotFound when the user has not favorited the title
	*/
	FindFavorite(context context.Context, userID, animeID string) (*Favorite, error)

	/*
		InsertFavorite stores a mark and fills its CreatedAt.
	*/
	InsertFavorite(context context.Context, favorite *Favorite) error

	/*
		DeleteFavorite removes a mark and reports whether a row existed.
	*/
	DeleteFavorite(context context.Context, userID, animeID string) (bool, error)
}

// MembershipStore persists list memberships. Every read returns rows joined with
// their catalog title; a nil Anime means the join did not resolve.
type MembershipStore interface {
	/*
		ListMemberships returns every membership of a user.
	*/
	ListMemberships(context context.Context, userID string) ([]*Membership, error)

	/*
		FindMembership returns the membership of a user for a title.

		Returns:
		  - error: apperr.NotFound when the title is in none of the user's lists
	*/
	FindMembership(context context.Context, userID, animeID string) (*Membership, error)

	/*
		InsertMembership stores a new membership and returns the joined row.
	*/
	InsertMembership(context context.Context, membership *Membership) (*Membership, error)

	/*
		UpdateMembership applies a patch, refreshes UpdatedAt and returns the joined row.

		Returns:
		  - error: apperr.NotFound when no membership of the user has this id
	*/
	UpdateMembership(context context.Context, userID, id string, patch Patch) (*Membership, error)

	/*
		DeleteMembership removes a membership and reports whether a row existed.
	*/
	DeleteMembership(context context.Context, userID, id string) (bool, error)
}

// Store is the full persistence contract of the package.
type Store interface {
	FavoriteStore
	MembershipStore
}

// AnimeLookup batch-loads catalog rows. [anime.Repository] satisfies it.
type AnimeLookup interface {
	FindByIDs(context context.Context, ids []string) ([]*anime.Anime, error)
}
