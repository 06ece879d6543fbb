package schema

// RefLanguageTable represents the 'ref.language' table
type RefLanguageTable struct {
	Table      string
	Code       string
	Name       string
	NativeName string
	IsActive   string
	CreatedAt  string
}

// RefLanguage is the schema definition for ref.language
var RefLanguage = RefLanguageTable{
	Table:      "ref.language",
	Code:       "code",
	Name:       "name",
	NativeName: "nativename",
	IsActive:   "isactive",
	CreatedAt:  "createdat",
}
