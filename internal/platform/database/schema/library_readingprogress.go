package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table     string
	UserID    string
	NovelID   string
	ChapterID string
	UpdatedAt string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:     "library.readingprogress",
	UserID:    "userid",
	NovelID:   "novelid",
	ChapterID: "chapterid",
	UpdatedAt: "updatedat",
}
