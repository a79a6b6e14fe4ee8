package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type LocationsStore struct {
	s *Store
}

var _ store.Locations = (*LocationsStore)(nil)

func cloneLocation(l models.Location) models.Location {
	l.EventsID = cloneIDs(l.EventsID)
	return l
}

func (s *LocationsStore) FindAll(ctx context.Context) ([]models.Location, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	locations := make([]models.Location, 0, len(s.s.locations))
	for _, l := range s.s.locations {
		locations = append(locations, cloneLocation(l))
	}
	return locations, nil
}

func (s *LocationsStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	l, ok := s.s.locations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	l = cloneLocation(l)
	return &l, nil
}

func (s *LocationsStore) Insert(ctx context.Context, l *models.Location) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	s.s.locations[l.ID] = cloneLocation(*l)
	return nil
}

func (s *LocationsStore) Update(ctx context.Context, id primitive.ObjectID, patch models.LocationPatch) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	l, ok := s.s.locations[id]
	if !ok {
		return store.ErrNotFound
	}
	patch.Apply(&l)
	l.UpdatedAt = time.Now()
	s.s.locations[id] = l
	return nil
}

func (s *LocationsStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	l, ok := s.s.locations[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	l.DeletedAt = timePtr(now)
	l.UpdatedAt = now
	s.s.locations[id] = l
	return nil
}

func (s *LocationsStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if _, ok := s.s.locations[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.s.locations, id)
	return nil
}

func (s *LocationsStore) AddEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	l, ok := s.s.locations[locationID]
	if !ok {
		return store.ErrNotFound
	}
	l.EventsID = addToSet(cloneIDs(l.EventsID), eventID)
	l.UpdatedAt = time.Now()
	s.s.locations[locationID] = l
	return nil
}

func (s *LocationsStore) RemoveEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	l, ok := s.s.locations[locationID]
	if !ok {
		return store.ErrNotFound
	}
	l.EventsID = pull(cloneIDs(l.EventsID), eventID)
	l.UpdatedAt = time.Now()
	s.s.locations[locationID] = l
	return nil
}
