package schema

// CatalogNovelTranslationTable represents the 'catalog.noveltranslation' table
type CatalogNovelTranslationTable struct {
	Table        string
	ID           string
	NovelID      string
	LanguageCode string
	Title        string
	Synopsis     string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogNovelTranslation is the schema definition for catalog.noveltranslation
var CatalogNovelTranslation = CatalogNovelTranslationTable{
	Table:        "catalog.noveltranslation",
	ID:           "id",
	NovelID:      "novelid",
	LanguageCode: "languagecode",
	Title:        "title",
	Synopsis:     "synopsis",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
