// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// RoleUser is the role assigned to newly registered users.
const RoleUser = "user"

// User represents a registered user in the system.
type User struct {
	// ID is the opaque unique identifier assigned at creation.
	ID string `gorm:"primaryKey;size:36"`

	Name    string `gorm:"size:255"`
	Surname string `gorm:"size:255"`

	// Email is the login key. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is always the output of the password hasher, never plaintext.
	PasswordHash string `gorm:"size:255;not null"`

	ProfilePicture []byte

	Role string `gorm:"size:32;not null;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field names a mutable user column. Save only writes the fields it is given.
type Field string

const (
	FieldName           Field = "name"
	FieldSurname        Field = "surname"
	FieldEmail          Field = "email"
	FieldUsername       Field = "username"
	FieldPasswordHash   Field = "password_hash"
	FieldProfilePicture Field = "profile_picture"
	FieldRole           Field = "role"
)
