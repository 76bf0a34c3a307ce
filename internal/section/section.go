package section

// Section groups books in the catalog. Section names are unique.
type Section struct {
	ID          int    `json:"sectionId"`
	Name        string `json:"name"`
	DateCreated string `json:"dateCreated"`
	Description string `json:"description"`
}

// Summary is a section plus its book count, for the admin dashboard.
type Summary struct {
	Section
	BookCount int `json:"bookCount"`
}
