package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table           string
	ID              string
	NovelID         string
	Number          string
	Title           string
	Content         string
	WordCount       string
	IsPublished     string
	PublishedAt     string
	TranslatorNotes string
	SourceURL       string
	ReadingTime     string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:           "catalog.chapter",
	ID:              "id",
	NovelID:         "novelid",
	Number:          "chapternumber",
	Title:           "title",
	Content:         "content",
	WordCount:       "wordcount",
	IsPublished:     "ispublished",
	PublishedAt:     "publishedat",
	TranslatorNotes: "translatornotes",
	SourceURL:       "sourceurl",
	ReadingTime:     "readingtime",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
