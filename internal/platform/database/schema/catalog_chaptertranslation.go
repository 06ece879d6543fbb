package schema

// CatalogChapterTranslationTable represents the 'catalog.chaptertranslation' table
type CatalogChapterTranslationTable struct {
	Table        string
	ID           string
	ChapterID    string
	LanguageCode string
	Title        string
	Content      string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogChapterTranslation is the schema definition for catalog.chaptertranslation
var CatalogChapterTranslation = CatalogChapterTranslationTable{
	Table:        "catalog.chaptertranslation",
	ID:           "id",
	ChapterID:    "chapterid",
	LanguageCode: "languagecode",
	Title:        "title",
	Content:      "content",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
