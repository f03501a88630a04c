package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password hash is never serialized; handlers build separate
// response types for anything that leaves the process.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username (case-insensitive uniqueness).
//  Email        – unique email address (case-insensitive uniqueness).
//  PasswordHash – bcrypt hashed password.
//  FullName     – optional display name.
//  CreatedAt    – timestamp of registration.
//  LastLoginAt  – timestamp of the most recent successful login (null until first login).
type User struct {
	ID           uint64     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     *string    `json:"full_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
