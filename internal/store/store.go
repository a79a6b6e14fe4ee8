// Package store defines the per-collection data access contracts. The mongodb
// subpackage implements them against MongoDB; memstore provides an in-memory
// implementation for isolated tests. Cross-collection logic lives one layer up,
// in internal/repository.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
)

// ErrNotFound is returned when an operation targets a document that does not
// exist. Soft-deleted documents still exist and are never reported as missing.
var ErrNotFound = errors.New("document not found")

// Users gives access to the users collection. AddFriend and RemoveFriend have
// set semantics: adding an existing friend or removing an absent one succeeds
// without changing the document.
type Users interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Replace(ctx context.Context, id primitive.ObjectID, u *models.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	// PullFriendAll removes friendID from every user's friends list.
	PullFriendAll(ctx context.Context, friendID primitive.ObjectID) error
}

type Cercles interface {
	FindAll(ctx context.Context) ([]models.Cercle, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cercle, error)
	Insert(ctx context.Context, c *models.Cercle) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.CerclePatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddMember(ctx context.Context, cercleID, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, cercleID, userID primitive.ObjectID) error
	// PullMemberAll removes userID from every cercle's members_ids.
	PullMemberAll(ctx context.Context, userID primitive.ObjectID) error
}

type Locations interface {
	FindAll(ctx context.Context) ([]models.Location, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	Insert(ctx context.Context, l *models.Location) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.LocationPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddEvent pushes eventID onto the location's eventsId set. It returns
	// ErrNotFound when the location does not exist, which event creation
	// relies on to trigger its rollback.
	AddEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error
	RemoveEvent(ctx context.Context, locationID, eventID primitive.ObjectID) error
}

type Events interface {
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error)
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)
	FindByOrganizer(ctx context.Context, cercleID primitive.ObjectID) ([]models.Event, error)
	Insert(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error
	RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error
	// PullParticipantAll removes userID from every event's participants_ids.
	PullParticipantAll(ctx context.Context, userID primitive.ObjectID) error
}
