package cart

// Item is one pending purchase row: a book and how many copies a user
// wants. Quantities are bounded 1..5; rows are drained at checkout.
type Item struct {
	ID       int `json:"cartId"`
	UserID   int `json:"userId"`
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

// Line is an item joined with its book for display.
type Line struct {
	Item
	BookName  string  `json:"bookName"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}
