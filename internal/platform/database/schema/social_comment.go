package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	NovelID   string
	ChapterID string
	ParentID  string
	Content   string
	IsEdited  string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	NovelID:   "novelid",
	ChapterID: "chapterid",
	ParentID:  "parentid",
	Content:   "content",
	IsEdited:  "isedited",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
