// Package mongodb implements the store contracts against MongoDB. Set-valued
// reference fields are maintained with $addToSet and $pull so that concurrent
// writers racing on the same document stay safe.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jocke0406/Back-MyM/internal/store"
)

// collection wraps the handful of update shapes every store shares.
type collection struct {
	col *mongo.Collection
}

func (c *collection) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := c.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// addToSet is idempotent: re-adding an existing member matches the document
// and modifies nothing.
func (c *collection) addToSet(ctx context.Context, id primitive.ObjectID, field string, value primitive.ObjectID) error {
	return c.updateOne(ctx, id, bson.M{
		"$addToSet": bson.M{field: value},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (c *collection) pull(ctx context.Context, id primitive.ObjectID, field string, value primitive.ObjectID) error {
	return c.updateOne(ctx, id, bson.M{
		"$pull": bson.M{field: value},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

// pullAll removes value from field across the whole collection.
func (c *collection) pullAll(ctx context.Context, field string, value primitive.ObjectID) error {
	_, err := c.col.UpdateMany(ctx, bson.M{field: value}, bson.M{
		"$pull": bson.M{field: value},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (c *collection) softDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return c.updateOne(ctx, id, bson.M{
		"$set": bson.M{"deletedAt": now, "updatedAt": now},
	})
}

func (c *collection) hardDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *collection) setFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	return c.updateOne(ctx, id, bson.M{"$set": set})
}

func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
