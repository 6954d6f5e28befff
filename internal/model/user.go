package model

import "time"

// User represents an administrator account as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are primarily used
// internally by the repository layer; handlers define separate view
// types where needed.  Accounts are created by registration, mutated by
// the profile form and never hard-deleted by any route.
//
// Fields:
//  ID           - primary key identifier of the user.
//  Name         - display name shown in the admin panel.
//  Email        - unique email address used for login.
//  PasswordHash - bcrypt hashed password (users.password column).
//  Avatar       - public path of the uploaded avatar image (nullable).
//  CreatedAt    - timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password
	Avatar       *string   // users.avatar (nullable)
	CreatedAt    time.Time // users.created_at
}
