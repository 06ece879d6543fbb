package schema

// CatalogNovelTable represents the 'catalog.novel' table
type CatalogNovelTable struct {
	Table              string
	ID                 string
	AuthorID           string
	Title              string
	TitleTranslated    string
	Synopsis           string
	SynopsisTranslated string
	Slug               string
	OriginalLanguage   string
	CoverURL           string
	SourceURL          string
	PublicationStatus  string
	TranslationStatus  string
	GenreTags          string
	TotalChapters      string
	AverageRating      string
	IsActive           string
	FirstPublishedAt   string
	CreatedAt          string
	UpdatedAt          string
}

// CatalogNovel is the schema definition for catalog.novel
var CatalogNovel = CatalogNovelTable{
	Table:              "catalog.novel",
	ID:                 "id",
	AuthorID:           "authorid",
	Title:              "title",
	TitleTranslated:    "titletranslated",
	Synopsis:           "synopsis",
	SynopsisTranslated: "synopsistranslated",
	Slug:               "slug",
	OriginalLanguage:   "originallanguage",
	CoverURL:           "coverurl",
	SourceURL:          "sourceurl",
	PublicationStatus:  "publicationstatus",
	TranslationStatus:  "translationstatus",
	GenreTags:          "genretags",
	TotalChapters:      "totalchapters",
	AverageRating:      "averagerating",
	IsActive:           "isactive",
	FirstPublishedAt:   "firstpublishedat",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}
