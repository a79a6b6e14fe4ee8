package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type LocationsStore struct {
	collection
}

func NewLocations(db *mongo.Database) *LocationsStore {
	return &LocationsStore{collection{col: db.Collection("locations")}}
}

var _ store.Locations = (*LocationsStore)(nil)

func (s *LocationsStore) FindAll(ctx context.Context) ([]models.Location, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := make([]models.Location, 0)
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *LocationsStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var l models.Location
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, mapFindErr(err)
	}
	return &l, nil
}

func (s *LocationsStore) Insert(ctx context.Context, l *models.Location) error {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, l)
	return err
}

func (s *LocationsStore) Update(ctx context.Context, id primitive.ObjectID, patch models.LocationPatch) error {
	return s.setFields(ctx, id, patch.SetDoc())
}

func (s *LocationsStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.softDelete(ctx, id)
}

func (s *LocationsStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.hardDelete(ctx, id)
}

func (s *LocationsStore) AddEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error {
	return s.addToSet(ctx, locationID, "eventsId", eventID)
}

func (s *LocationsStore) RemoveEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error {
	return s.pull(ctx, locationID, "eventsId", eventID)
}
