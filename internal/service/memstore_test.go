package service

import (
	"context"
	"strings"
	"sync"

	"github.com/iliyamo/library-catalog/internal/model"
	"github.com/iliyamo/library-catalog/internal/repository"
)

// memStore is shared in-memory state standing in for the database.
// memUsers and memBooks expose it through the two store interfaces and
// mirror the semantics the workflows rely on: case-insensitive
// uniqueness, case-sensitive exact lookups, owner username resolution
// on reads, and nullify-on-delete for book owners.
type memStore struct {
	mu         sync.Mutex
	users      []*model.User
	books      []*model.Book
	nextUserID uint64
	nextBookID uint64
}

type memUsers struct{ *memStore }
type memBooks struct{ *memStore }

func newMemStore() (*memUsers, *memBooks) {
	s := &memStore{}
	return &memUsers{s}, &memBooks{s}
}

// ----- UserStore -----

func (m *memUsers) FindByUsernameOrEmail(_ context.Context, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Insert(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if strings.EqualFold(other.Username, u.Username) {
			return repository.ErrUsernameTaken
		}
		if strings.EqualFold(other.Email, u.Email) {
			return repository.ErrEmailTaken
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUsers) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.users {
		if other.ID == u.ID {
			cp := *u
			m.users[i] = &cp
			return nil
		}
	}
	return nil
}

// deleteUser removes a user and clears the owner reference of any book
// that pointed at them, the way the FK's ON DELETE SET NULL does.
func (m *memUsers) deleteUser(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.users[:0]
	for _, u := range m.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	m.users = kept
	for _, b := range m.books {
		if b.UserID != nil && *b.UserID == id {
			b.UserID = nil
		}
	}
}

func (m *memUsers) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memUsers) get(id uint64) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp
		}
	}
	return nil
}

// ----- BookStore -----

// resolve copies a book and fills in the owner username, standing in
// for the repository's LEFT JOIN. Callers must hold the lock.
func (s *memStore) resolve(b *model.Book) model.Book {
	cp := *b
	cp.OwnerUsername = nil
	if cp.UserID != nil {
		for _, u := range s.users {
			if u.ID == *cp.UserID {
				name := u.Username
				cp.OwnerUsername = &name
				break
			}
		}
	}
	return cp
}

func (m *memBooks) List(_ context.Context) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, m.resolve(b))
	}
	return out, nil
}

func (m *memBooks) GetByID(_ context.Context, id uint64) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == id {
			cp := m.resolve(b)
			return &cp, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (m *memBooks) SearchByTitleOrAuthor(_ context.Context, query string) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Book, 0)
	for _, b := range m.books {
		if strings.Contains(b.Title, query) || strings.Contains(b.Author, query) {
			out = append(out, m.resolve(b))
		}
	}
	return out, nil
}

func (m *memBooks) Insert(_ context.Context, b *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBookID++
	b.ID = m.nextBookID
	cp := *b
	m.books = append(m.books, &cp)
	return nil
}

func (m *memBooks) Update(_ context.Context, b *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.books {
		if other.ID == b.ID {
			cp := *b
			cp.OwnerUsername = nil // not a column
			m.books[i] = &cp
			return nil
		}
	}
	return nil
}

func (m *memBooks) Delete(_ context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
