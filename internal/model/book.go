package model

import "time"

// Book mirrors the `books` table. A book may be ownerless: UserID is a
// nullable foreign key into `users` and is set to NULL (not cascaded)
// when the owning user is deleted. OwnerUsername is not a column; it is
// resolved by the repository via a LEFT JOIN for read operations.
type Book struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Description   *string    `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	UserID        *uint64    `json:"user_id,omitempty"`
	OwnerUsername *string    `json:"username,omitempty"`
}
