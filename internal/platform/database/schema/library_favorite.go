package schema

// LibraryFavoriteTable represents the 'library.favorite' table
type LibraryFavoriteTable struct {
	Table     string
	UserID    string
	AnimeID   string
	CreatedAt string
}

// LibraryFavorite is the schema definition for library.favorite
var LibraryFavorite = LibraryFavoriteTable{
	Table:     "library.favorite",
	UserID:    "userid",
	AnimeID:   "animeid",
	CreatedAt: "createdat",
}
