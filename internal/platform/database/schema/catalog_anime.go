package schema

// CatalogAnimeTable represents the 'catalog.anime' table
type CatalogAnimeTable struct {
	Table       string
	ID          string
	Slug        string
	Title       string
	ImageURL    string
	Genres      string
	Rating      string
	Description string
	ReleaseDate string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogAnime is the schema definition for catalog.anime
var CatalogAnime = CatalogAnimeTable{
	Table:       "catalog.anime",
	ID:          "id",
	Slug:        "slug",
	Title:       "title",
	ImageURL:    "imageurl",
	Genres:      "genres",
	Rating:      "rating",
	Description: "description",
	ReleaseDate: "releasedate",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns the column list in scan order.
func (t CatalogAnimeTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.ImageURL, t.Genres, t.Rating, t.Description, t.ReleaseDate,
		t.CreatedAt, t.UpdatedAt,
	}
}
