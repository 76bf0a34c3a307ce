package user

// User is an account in the library store. Admins (librarians) manage the
// catalog; regular members browse and purchase.
type User struct {
	ID       int    `json:"userId"`
	Username string `json:"username"`
	PassHash string `json:"-"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
}
