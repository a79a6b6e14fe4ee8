package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type UsersStore struct {
	s *Store
}

var _ store.Users = (*UsersStore)(nil)

func cloneUser(u models.User) models.User {
	u.Friends = cloneIDs(u.Friends)
	return u
}

func (s *UsersStore) FindAll(ctx context.Context) ([]models.User, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	users := make([]models.User, 0, len(s.s.users))
	for _, u := range s.s.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (s *UsersStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	u, ok := s.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (s *UsersStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	for _, u := range s.s.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UsersStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.s.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (s *UsersStore) Insert(ctx context.Context, u *models.User) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (s *UsersStore) Replace(ctx context.Context, id primitive.ObjectID, u *models.User) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if _, ok := s.s.users[id]; !ok {
		return store.ErrNotFound
	}
	u.ID = id
	u.UpdatedAt = time.Now()
	s.s.users[id] = cloneUser(*u)
	return nil
}

func (s *UsersStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	u, ok := s.s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = time.Now()
	s.s.users[id] = u
	return nil
}

func (s *UsersStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	u, ok := s.s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = timePtr(now)
	u.UpdatedAt = now
	s.s.users[id] = u
	return nil
}

func (s *UsersStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if _, ok := s.s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.s.users, id)
	return nil
}

func (s *UsersStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	u, ok := s.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Friends = addToSet(cloneIDs(u.Friends), friendID)
	u.UpdatedAt = time.Now()
	s.s.users[userID] = u
	return nil
}

func (s *UsersStore) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	u, ok := s.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Friends = pull(cloneIDs(u.Friends), friendID)
	u.UpdatedAt = time.Now()
	s.s.users[userID] = u
	return nil
}

func (s *UsersStore) PullFriendAll(ctx context.Context, friendID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	for id, u := range s.s.users {
		u.Friends = pull(cloneIDs(u.Friends), friendID)
		s.s.users[id] = u
	}
	return nil
}
