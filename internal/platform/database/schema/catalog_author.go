package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table         string
	ID            string
	Name          string
	NameRomanized string
	Bio           string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:         "catalog.author",
	ID:            "id",
	Name:          "name",
	NameRomanized: "nameromanized",
	Bio:           "bio",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}
