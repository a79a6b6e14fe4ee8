// Package memstore is an in-memory implementation of the store contracts. It
// backs the repository and handler tests so the referential-integrity logic can
// be exercised without a running MongoDB.
package memstore

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
)

// Store holds the four collections behind one mutex, mirroring the single
// database handle the MongoDB implementation wraps.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]models.User
	cercles   map[primitive.ObjectID]models.Cercle
	locations map[primitive.ObjectID]models.Location
	events    map[primitive.ObjectID]models.Event
}

func New() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]models.User),
		cercles:   make(map[primitive.ObjectID]models.Cercle),
		locations: make(map[primitive.ObjectID]models.Location),
		events:    make(map[primitive.ObjectID]models.Event),
	}
}

func (s *Store) Users() *UsersStore         { return &UsersStore{s} }
func (s *Store) Cercles() *CerclesStore     { return &CerclesStore{s} }
func (s *Store) Locations() *LocationsStore { return &LocationsStore{s} }
func (s *Store) Events() *EventsStore       { return &EventsStore{s} }

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID{}, ids...)
}

// addToSet appends id once, preserving set semantics.
func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time { return &t }
