package domain

// User is an admin account. There is no signup flow; rows are seeded
// out-of-band and only the password hash is ever mutated.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}
