package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type UsersStore struct {
	collection
}

func NewUsers(db *mongo.Database) *UsersStore {
	return &UsersStore{collection{col: db.Collection("users")}}
}

var _ store.Users = (*UsersStore)(nil)

func (s *UsersStore) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapFindErr(err)
	}
	return &u, nil
}

func (s *UsersStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapFindErr(err)
	}
	return &u, nil
}

func (s *UsersStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0, len(ids))
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, u)
	return err
}

// Replace overwrites every mutable field of the document. createdAt is kept as
// supplied by the caller; updatedAt always refreshes.
func (s *UsersStore) Replace(ctx context.Context, id primitive.ObjectID, u *models.User) error {
	u.ID = id
	u.UpdatedAt = time.Now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UsersStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.setFields(ctx, id, bson.M{"password": hash})
}

func (s *UsersStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.softDelete(ctx, id)
}

func (s *UsersStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.hardDelete(ctx, id)
}

func (s *UsersStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return s.addToSet(ctx, userID, "friends", friendID)
}

func (s *UsersStore) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return s.pull(ctx, userID, "friends", friendID)
}

func (s *UsersStore) PullFriendAll(ctx context.Context, friendID primitive.ObjectID) error {
	return s.pullAll(ctx, "friends", friendID)
}
