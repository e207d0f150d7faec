package model

import "time"

// User represents an application account as stored in the `users` table.
// Each field corresponds to a column in the database. The json tags are
// omitted because these structs are used internally by the repository
// layer; handlers define separate response types with appropriate JSON
// tags and never expose the password hash.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address (stored lowercased and trimmed).
//	PasswordHash – bcrypt hashed password.
//	Name         – display name supplied at registration.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
