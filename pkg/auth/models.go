package auth

// User is the identity carried by a verified session token.
type User struct {
	ID       string
	ClientID string
	Role     string
	Email    string
}
