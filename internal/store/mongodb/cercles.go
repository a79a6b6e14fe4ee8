package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type CerclesStore struct {
	collection
}

func NewCercles(db *mongo.Database) *CerclesStore {
	return &CerclesStore{collection{col: db.Collection("cercles")}}
}

var _ store.Cercles = (*CerclesStore)(nil)

func (s *CerclesStore) FindAll(ctx context.Context) ([]models.Cercle, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cercles := make([]models.Cercle, 0)
	if err := cursor.All(ctx, &cercles); err != nil {
		return nil, err
	}
	return cercles, nil
}

func (s *CerclesStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cercle, error) {
	var c models.Cercle
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapFindErr(err)
	}
	return &c, nil
}

func (s *CerclesStore) Insert(ctx context.Context, c *models.Cercle) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, c)
	return err
}

func (s *CerclesStore) Update(ctx context.Context, id primitive.ObjectID, patch models.CerclePatch) error {
	return s.setFields(ctx, id, patch.SetDoc())
}

func (s *CerclesStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.softDelete(ctx, id)
}

func (s *CerclesStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.hardDelete(ctx, id)
}

func (s *CerclesStore) AddMember(ctx context.Context, cercleID, userID primitive.ObjectID) error {
	return s.addToSet(ctx, cercleID, "members_ids", userID)
}

func (s *CerclesStore) RemoveMember(ctx context.Context, cercleID, userID primitive.ObjectID) error {
	return s.pull(ctx, cercleID, "members_ids", userID)
}

func (s *CerclesStore) PullMemberAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.pullAll(ctx, "members_ids", userID)
}
