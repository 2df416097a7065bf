package model

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserStore keeps users in a map keyed by email. Safe for concurrent use.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// MemoryFileStore keeps file records in insertion order.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files []File
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{}
}

func (s *MemoryFileStore) Insert(_ context.Context, file *File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prepareInsert(file)
	s.files = append(s.files, *file)
	return nil
}

func (s *MemoryFileStore) FindByID(_ context.Context, id primitive.ObjectID) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		file := s.files[i]
		return &file, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryFileStore) ListByOwner(_ context.Context, userID primitive.ObjectID) ([]File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]File, 0)
	for _, f := range s.files {
		if f.UserID == userID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (s *MemoryFileStore) Update(_ context.Context, file *File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(file.ID)
	if i < 0 {
		return ErrNotFound
	}
	cur := &s.files[i]
	cur.Filename = file.Filename
	cur.StoredName = file.StoredName
	cur.Filepath = file.Filepath
	cur.QRCodePath = file.QRCodePath
	return nil
}

func (s *MemoryFileStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return nil
}

func (s *MemoryFileStore) index(id primitive.ObjectID) int {
	for i := range s.files {
		if s.files[i].ID == id {
			return i
		}
	}
	return -1
}
