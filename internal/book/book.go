package book

// Book is a catalog entry inside a section. Price must be positive; order
// rows snapshot it at purchase time.
type Book struct {
	ID        int     `json:"bookId"`
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	Price     float64 `json:"price"`
	SectionID int     `json:"sectionId"`
}
