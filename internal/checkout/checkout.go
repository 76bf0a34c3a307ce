package checkout

import "time"

// Order is one immutable line of a purchase. Price is the book's unit
// price captured at checkout time; later catalog edits never touch it.
type Order struct {
	ID            int     `json:"orderId"`
	TransactionID int     `json:"transactionId"`
	BookID        int     `json:"bookId"`
	BookName      string  `json:"bookName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

// Transaction groups the orders produced by a single checkout.
type Transaction struct {
	ID        int       `json:"transactionId"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Orders    []Order   `json:"orders"`
	Paid      bool      `json:"paid"`
}

// Payment records the settled amount for a transaction: the order subtotal
// plus the flat tax, rounded to cents.
type Payment struct {
	ID            int       `json:"paymentId"`
	UserID        int       `json:"userId"`
	TransactionID int       `json:"transactionId"`
	AmountPayable float64   `json:"amountPayable"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PendingPayment is an unpaid transaction with its computed amounts, shown
// on the payments page.
type PendingPayment struct {
	Transaction
	Subtotal      float64 `json:"subtotal"`
	AmountPayable float64 `json:"amountPayable"`
}
