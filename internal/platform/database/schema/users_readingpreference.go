package schema

// UserPreferencesTable represents the 'users.readingpreference' table
type UserPreferencesTable struct {
	Table             string
	UserID            string
	Theme             string
	FontSize          string
	FontFamily        string
	LineSpacing       string
	PreferredLanguage string
	HideLanguages     string
	UpdatedAt         string
}

// UserPreferences is the schema definition for users.readingpreference
var UserPreferences = UserPreferencesTable{
	Table:             "users.readingpreference",
	UserID:            "userid",
	Theme:             "theme",
	FontSize:          "fontsize",
	FontFamily:        "fontfamily",
	LineSpacing:       "linespacing",
	PreferredLanguage: "preferredlanguage",
	HideLanguages:     "hidelanguages",
	UpdatedAt:         "updatedat",
}
