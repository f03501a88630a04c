package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/library-catalog/internal/model"
)

// BookRepo is the catalog store. Read operations resolve the owner
// username through a LEFT JOIN so ownerless books come back with a nil
// owner rather than an error.
type BookRepo struct{ DB *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{DB: db} }

const bookSelect = `SELECT b.id, b.title, b.author, b.description,
       b.created_at, b.updated_at, b.user_id, u.username
  FROM books b
  LEFT JOIN users u ON u.id = b.user_id`

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Description,
		&b.CreatedAt, &b.UpdatedAt, &b.UserID, &b.OwnerUsername)
}

// List returns all books with their owner usernames.
func (r *BookRepo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.DB.QueryContext(ctx, bookSelect+" ORDER BY b.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// GetByID returns a single book or ErrBookNotFound.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.DB.QueryRowContext(ctx, bookSelect+" WHERE b.id = ?", id), &b)
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SearchByTitleOrAuthor returns books whose title or author contains
// query as a case-sensitive substring. LIKE BINARY forces byte-wise
// matching on the otherwise case-insensitive collation; the pattern is
// escaped so %, _ and \ in the query match literally.
func (r *BookRepo) SearchByTitleOrAuthor(ctx context.Context, query string) ([]model.Book, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.DB.QueryContext(ctx,
		bookSelect+" WHERE b.title LIKE BINARY ? OR b.author LIKE BINARY ? ORDER BY b.id",
		pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// Insert persists a new book and assigns its id.
func (r *BookRepo) Insert(ctx context.Context, b *model.Book) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO books (title, author, description, created_at, user_id) VALUES (?,?,?,?,?)",
		b.Title, b.Author, b.Description, b.CreatedAt, b.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Update replaces the mutable fields of an existing book. Existence is
// the caller's concern: an UPDATE that changes nothing and one that hits
// a missing row both report zero affected rows in MySQL, so affected
// rows cannot signal not-found here.
func (r *BookRepo) Update(ctx context.Context, b *model.Book) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE books SET title=?, author=?, description=?, updated_at=? WHERE id=?",
		b.Title, b.Author, b.Description, b.UpdatedAt, b.ID)
	return err
}

// Delete hard-deletes a book and reports whether a row was removed.
func (r *BookRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func collectBooks(rows *sql.Rows) ([]model.Book, error) {
	out := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
