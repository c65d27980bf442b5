package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The json tags are omitted because these structs are used by
// the repository layer; handlers define separate response types with
// appropriate JSON tags.  UserType is either "admin" or "user" and
// gates access to the train management endpoints.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	FirstName    – given name.
//	LastName     – family name.
//	PhoneNumber  – optional contact number.
//	UserType     – "admin" or "user".
//	IsActive     – whether the account is active.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	PhoneNumber  *string   // users.phone_number (nullable)
	UserType     string    // users.user_type
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
}

// User type values stored in users.user_type.
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)
