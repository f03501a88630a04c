package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/library-catalog/internal/model"
	"github.com/iliyamo/library-catalog/internal/queue"
	"github.com/iliyamo/library-catalog/internal/repository"
	"github.com/iliyamo/library-catalog/internal/validator"
)

// BookStore is the catalog store contract. *repository.BookRepo
// satisfies it; tests supply an in-memory fake.
type BookStore interface {
	List(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id uint64) (*model.Book, error)
	SearchByTitleOrAuthor(ctx context.Context, query string) ([]model.Book, error)
	Insert(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// EventPublisher publishes catalog change events. A nil publisher
// disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookEvent) error
}

// BookInput carries the three client-mutable fields of a book.
type BookInput struct {
	Title       string
	Author      string
	Description string
}

// CatalogService implements CRUD and substring search over the catalog
// store. Mutations emit best-effort change events when a publisher is
// configured; publish failures are logged and never fail the request.
type CatalogService struct {
	books  BookStore
	events EventPublisher
}

func NewCatalogService(books BookStore, events EventPublisher) *CatalogService {
	return &CatalogService{books: books, events: events}
}

// List returns every book with its owner's display name resolved.
func (s *CatalogService) List(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

// Get returns one book or ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id uint64) (*model.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBookNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// Create validates the input and persists a new book. When a requester
// id is supplied the book is stamped with that owner; otherwise it is
// created ownerless.
func (s *CatalogService) Create(ctx context.Context, in BookInput, requester *uint64) (*model.Book, error) {
	if err := validateBook(in); err != nil {
		return nil, err
	}
	b := &model.Book{
		Title:     strings.TrimSpace(in.Title),
		Author:    strings.TrimSpace(in.Author),
		CreatedAt: time.Now().UTC(),
		UserID:    requester,
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		b.Description = &d
	}
	if err := s.books.Insert(ctx, b); err != nil {
		return nil, err
	}
	// Re-read through the join so the response carries the owner username.
	created, err := s.books.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ActionCreated, created)
	return created, nil
}

// Update fully replaces title, author and description of an existing
// book and refreshes its update timestamp. A missing id yields
// ErrNotFound with no mutation.
func (s *CatalogService) Update(ctx context.Context, id uint64, in BookInput) error {
	if err := validateBook(in); err != nil {
		return err
	}
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBookNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	b.Title = strings.TrimSpace(in.Title)
	b.Author = strings.TrimSpace(in.Author)
	b.Description = nil
	if d := strings.TrimSpace(in.Description); d != "" {
		b.Description = &d
	}
	now := time.Now().UTC()
	b.UpdatedAt = &now

	if err := s.books.Update(ctx, b); err != nil {
		return err
	}
	s.publish(ctx, queue.ActionUpdated, b)
	return nil
}

// Delete hard-deletes a book; a missing id yields ErrNotFound.
func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBookNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	deleted, err := s.books.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.publish(ctx, queue.ActionDeleted, b)
	return nil
}

// Search returns books whose title or author contains query as a
// case-sensitive substring. Empty or whitespace-only queries are
// rejected with a ValidationError.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Fields: map[string]string{"query": "must not be empty"}}
	}
	return s.books.SearchByTitleOrAuthor(ctx, query)
}

func validateBook(in BookInput) error {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	v := validator.New()
	v.Check(title != "", "title", "must be provided")
	v.Check(len(title) <= 200, "title", "must not exceed 200 characters")
	v.Check(author != "", "author", "must be provided")
	v.Check(len(author) <= 100, "author", "must not exceed 100 characters")
	v.Check(len(strings.TrimSpace(in.Description)) <= 1000, "description", "must not exceed 1000 characters")
	if !v.Valid() {
		return &ValidationError{Fields: v.Errors}
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, action string, b *model.Book) {
	if s.events == nil {
		return
	}
	ev := queue.BookEvent{
		Action:     action,
		BookID:     b.ID,
		Title:      b.Title,
		Author:     b.Author,
		UserID:     b.UserID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("catalog: publish %s event for book %d failed: %v", action, b.ID, err)
	}
}
