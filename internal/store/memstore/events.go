package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type EventsStore struct {
	s *Store
}

var _ store.Events = (*EventsStore)(nil)

func cloneEvent(e models.Event) models.Event {
	e.ParticipantsIDs = cloneIDs(e.ParticipantsIDs)
	return e
}

func (s *EventsStore) FindAll(ctx context.Context) ([]models.Event, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	events := make([]models.Event, 0, len(s.s.events))
	for _, e := range s.s.events {
		events = append(events, cloneEvent(e))
	}
	return events, nil
}

func (s *EventsStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	e, ok := s.s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	e = cloneEvent(e)
	return &e, nil
}

func (s *EventsStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	events := make([]models.Event, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.s.events[id]; ok {
			events = append(events, cloneEvent(e))
		}
	}
	return events, nil
}

func (s *EventsStore) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	events := make([]models.Event, 0)
	for _, e := range s.s.events {
		for _, p := range e.ParticipantsIDs {
			if p == userID {
				events = append(events, cloneEvent(e))
				break
			}
		}
	}
	return events, nil
}

func (s *EventsStore) FindByOrganizer(ctx context.Context, cercleID primitive.ObjectID) ([]models.Event, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	events := make([]models.Event, 0)
	for _, e := range s.s.events {
		if e.Organizer == cercleID {
			events = append(events, cloneEvent(e))
		}
	}
	return events, nil
}

func (s *EventsStore) Insert(ctx context.Context, e *models.Event) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.s.events[e.ID] = cloneEvent(*e)
	return nil
}

func (s *EventsStore) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	e, ok := s.s.events[id]
	if !ok {
		return store.ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now()
	s.s.events[id] = e
	return nil
}

func (s *EventsStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	e, ok := s.s.events[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	e.DeletedAt = timePtr(now)
	e.UpdatedAt = now
	s.s.events[id] = e
	return nil
}

func (s *EventsStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if _, ok := s.s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.s.events, id)
	return nil
}

func (s *EventsStore) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	e, ok := s.s.events[eventID]
	if !ok {
		return store.ErrNotFound
	}
	e.ParticipantsIDs = addToSet(cloneIDs(e.ParticipantsIDs), userID)
	e.UpdatedAt = time.Now()
	s.s.events[eventID] = e
	return nil
}

func (s *EventsStore) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	e, ok := s.s.events[eventID]
	if !ok {
		return store.ErrNotFound
	}
	e.ParticipantsIDs = pull(cloneIDs(e.ParticipantsIDs), userID)
	e.UpdatedAt = time.Now()
	s.s.events[eventID] = e
	return nil
}

func (s *EventsStore) PullParticipantAll(ctx context.Context, userID primitive.ObjectID) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	for id, e := range s.s.events {
		e.ParticipantsIDs = pull(cloneIDs(e.ParticipantsIDs), userID)
		s.s.events[id] = e
	}
	return nil
}
