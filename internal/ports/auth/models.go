package auth

// Claims representa la identidad resuelta para el request (sesión o header dev).
type Claims struct {
	UserID   int
	Username string
	Role     string
}
