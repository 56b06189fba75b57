package models

import (
	"time"
)

// User is the public view of an account. The password hash never leaves
// StoredUser.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoredUser is the persisted user record.
type StoredUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// Public strips the password hash.
func (u *StoredUser) Public() *User {
	user := u.User
	return &user
}

// Session is the current-user snapshot plus the opaque token issued for it.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.User != nil && s.Token != ""
}
