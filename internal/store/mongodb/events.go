package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type EventsStore struct {
	collection
}

func NewEvents(db *mongo.Database) *EventsStore {
	return &EventsStore{collection{col: db.Collection("events")}}
}

var _ store.Events = (*EventsStore)(nil)

func (s *EventsStore) findMany(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := make([]models.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventsStore) FindAll(ctx context.Context) ([]models.Event, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *EventsStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, mapFindErr(err)
	}
	return &e, nil
}

func (s *EventsStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	return s.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *EventsStore) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.findMany(ctx, bson.M{"participants_ids": userID})
}

func (s *EventsStore) FindByOrganizer(ctx context.Context, cercleID primitive.ObjectID) ([]models.Event, error) {
	return s.findMany(ctx, bson.M{"organizer": cercleID})
}

func (s *EventsStore) Insert(ctx context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, e)
	return err
}

func (s *EventsStore) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) error {
	return s.setFields(ctx, id, patch.SetDoc())
}

func (s *EventsStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.softDelete(ctx, id)
}

func (s *EventsStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.hardDelete(ctx, id)
}

func (s *EventsStore) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error {
	return s.addToSet(ctx, eventID, "participants_ids", userID)
}

func (s *EventsStore) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error {
	return s.pull(ctx, eventID, "participants_ids", userID)
}

func (s *EventsStore) PullParticipantAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.pullAll(ctx, "participants_ids", userID)
}
