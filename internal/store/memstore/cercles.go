package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type CerclesStore struct {
	s *Store
}

var _ store.Cercles = (*CerclesStore)(nil)

func cloneCercle(c models.Cercle) models.Cercle {
	c.MembersIDs = cloneIDs(c.MembersIDs)
	return c
}

func (s *CerclesStore) FindAll(ctx context.Context) ([]models.Cercle, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	cercles := make([]models.Cercle, 0, len(s.s.cercles))
	for _, c := range s.s.cercles {
		cercles = append(cercles, cloneCercle(c))
	}
	return cercles, nil
}

func (s *CerclesStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cercle, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	c, ok := s.s.cercles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c = cloneCercle(c)
	return &c, nil
}

func (s *CerclesStore) Insert(ctx context.Context, c *models.Cercle) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.s.cercles[c.ID] = cloneCercle(*c)
	return nil
}

func (s *CerclesStore) Update(ctx context.Context, id primitive.ObjectID, patch models.CerclePatch) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	c, ok := s.s.cercles[id]
	if !ok {
		return store.ErrNotFound
	}
	patch.Apply(&c)
	c.UpdatedAt = time.Now()
	s.s.cercles[id] = c
	return nil
}

func (s *CerclesStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	c, ok := s.s.cercles[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = timePtr(now)
	c.UpdatedAt = now
	s.s.cercles[id] = c
	return nil
}

func (s *CerclesStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if _, ok := s.s.cercles[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.s.cercles, id)
	return nil
}

func (s *CerclesStore) AddMember(ctx context.Context, cercleID, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	c, ok := s.s.cercles[cercleID]
	if !ok {
		return store.ErrNotFound
	}
	c.MembersIDs = addToSet(cloneIDs(c.MembersIDs), userID)
	c.UpdatedAt = time.Now()
	s.s.cercles[cercleID] = c
	return nil
}

func (s *CerclesStore) RemoveMember(ctx context.Context, cercleID, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	c, ok := s.s.cercles[cercleID]
	if !ok {
		return store.ErrNotFound
	}
	c.MembersIDs = pull(cloneIDs(c.MembersIDs), userID)
	c.UpdatedAt = time.Now()
	s.s.cercles[cercleID] = c
	return nil
}

func (s *CerclesStore) PullMemberAll(ctx context.Context, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	for id, c := range s.s.cercles {
		c.MembersIDs = pull(cloneIDs(c.MembersIDs), userID)
		s.s.cercles[id] = c
	}
	return nil
}
