package schema

// LibraryMembershipTable represents the 'library.membership' table
type LibraryMembershipTable struct {
	Table     string
	ID        string
	UserID    string
	AnimeID   string
	Category  string
	Progress  string
	Rating    string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// LibraryMembership is the schema definition for library.membership
var LibraryMembership = LibraryMembershipTable{
	Table:     "library.membership",
	ID:        "id",
	UserID:    "userid",
	AnimeID:   "animeid",
	Category:  "category",
	Progress:  "progress",
	Rating:    "rating",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the column list in scan order.
func (t LibraryMembershipTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.AnimeID, t.Category, t.Progress, t.Rating, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
