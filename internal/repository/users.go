// Package repository implements the four entity repositories and the
// cross-collection fixups that keep users, cercles, locations and events
// mutually consistent. Fixups are sequential, independently committed store
// operations: there is no multi-document transaction here, and the only
// explicit rollback is the one in event creation.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

// MinimumAge is the youngest a user may be at registration.
const MinimumAge = 16

type Users struct {
	users   store.Users
	cercles store.Cercles
	events  store.Events
	log     *zap.Logger
}

func NewUsers(users store.Users, cercles store.Cercles, events store.Events, log *zap.Logger) *Users {
	return &Users{users: users, cercles: cercles, events: events, log: log}
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	return r.users.FindAll(ctx)
}

func (r *Users) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := r.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// FullProfile joins the user with the events they participate in and the
// cercle they belong to.
func (r *Users) FullProfile(ctx context.Context, id primitive.ObjectID) (*models.UserFull, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := r.events.FindByParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	full := &models.UserFull{User: *u, Events: make([]models.EventSummary, 0, len(events))}
	for _, e := range events {
		full.Events = append(full.Events, models.EventSummary{ID: e.ID, Name: e.Name, StartAt: e.StartAt, EndAt: e.EndAt})
	}

	if sa := u.StudentAssociation; sa != nil && sa.AssociationID != nil {
		cercle, err := r.cercles.FindByID(ctx, *sa.AssociationID)
		switch {
		case err == nil:
			full.Cercle = &models.CercleSummary{ID: cercle.ID, Name: cercle.Name}
		case errors.Is(err, store.ErrNotFound):
			// dangling association reference, the profile stays usable
			r.log.Warn("user references missing cercle",
				zap.String("user", id.Hex()), zap.String("cercle", sa.AssociationID.Hex()))
		default:
			return nil, err
		}
	}
	return full, nil
}

// Friends resolves the user's friends ids to their thin projection.
func (r *Users) Friends(ctx context.Context, id primitive.ObjectID) ([]models.FriendView, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	friends, err := r.users.FindByIDs(ctx, u.Friends)
	if err != nil {
		return nil, err
	}
	views := make([]models.FriendView, 0, len(friends))
	for _, f := range friends {
		views = append(views, models.FriendView{
			ID:              f.ID,
			Name:            f.Name,
			Pseudo:          f.Pseudo,
			Photo:           f.Photo,
			Geolocalisation: f.Geolocalisation,
		})
	}
	return views, nil
}

// ParticipatedEvents lists the events whose participants_ids contain the user.
func (r *Users) ParticipatedEvents(ctx context.Context, id primitive.ObjectID) ([]models.Event, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	return r.events.FindByParticipant(ctx, id)
}

// Create validates the business rules gin's binding cannot check (email
// uniqueness, minimum age, association link), hashes the password and inserts
// the user. When the user declares an association membership, the cercle's
// members_ids gains the new id best-effort: a failure there is logged, not
// rolled back.
func (r *Users) Create(ctx context.Context, u *models.User, plainPassword string) (*models.User, error) {
	if _, err := r.users.FindByEmail(ctx, u.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if u.DateOfBirth.After(time.Now().AddDate(-MinimumAge, 0, 0)) {
		return nil, ErrTooYoung
	}

	if sa := u.StudentAssociation; sa != nil && sa.Member && sa.AssociationID == nil {
		return nil, ErrAssociationRequired
	}

	hash, err := utils.HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Photo == "" {
		u.Photo = models.DefaultPhoto
	}
	if u.Friends == nil {
		u.Friends = []primitive.ObjectID{}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.DeletedAt = nil

	if err := r.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	if sa := u.StudentAssociation; sa != nil && sa.Member && sa.AssociationID != nil {
		if err := r.cercles.AddMember(ctx, *sa.AssociationID, u.ID); err != nil {
			r.log.Warn("could not register new user in cercle",
				zap.String("user", u.ID.Hex()),
				zap.String("cercle", sa.AssociationID.Hex()),
				zap.Error(err))
		}
	}
	return u, nil
}

// Update replaces the whole document: unlike the other entities, a user PATCH
// must resubmit every required field. If the association changes, the old
// cercle loses the member and the new one gains it, as two separate writes.
func (r *Users) Update(ctx context.Context, id primitive.ObjectID, u *models.User, plainPassword string) (*models.User, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Email != existing.Email {
		if _, err := r.users.FindByEmail(ctx, u.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if u.DateOfBirth.After(time.Now().AddDate(-MinimumAge, 0, 0)) {
		return nil, ErrTooYoung
	}

	if sa := u.StudentAssociation; sa != nil && sa.Member && sa.AssociationID == nil {
		return nil, ErrAssociationRequired
	}

	hash, err := utils.HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	// fields not owned by the update payload survive the replace
	u.ID = id
	u.Role = existing.Role
	u.Friends = existing.Friends
	u.CreatedAt = existing.CreatedAt
	u.DeletedAt = existing.DeletedAt
	if u.Photo == "" {
		u.Photo = existing.Photo
	}

	oldAssoc := associationID(existing)
	newAssoc := associationID(u)

	if err := r.users.Replace(ctx, id, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !sameAssociation(oldAssoc, newAssoc) {
		if oldAssoc != nil {
			if err := r.cercles.RemoveMember(ctx, *oldAssoc, id); err != nil && !errors.Is(err, store.ErrNotFound) {
				r.log.Warn("could not remove user from previous cercle",
					zap.String("user", id.Hex()), zap.String("cercle", oldAssoc.Hex()), zap.Error(err))
			}
		}
		if newAssoc != nil {
			if err := r.cercles.AddMember(ctx, *newAssoc, id); err != nil {
				r.log.Warn("could not register user in new cercle",
					zap.String("user", id.Hex()), zap.String("cercle", newAssoc.Hex()), zap.Error(err))
			}
		}
	}
	return u, nil
}

// Delete removes every reference to the user from the other collections, then
// soft- or hard-deletes the document. The fan-out runs in both modes: even a
// soft-deleted user must not linger in friend lists, member rosters or
// participant sets.
func (r *Users) Delete(ctx context.Context, id primitive.ObjectID, hard bool) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if err := r.users.PullFriendAll(ctx, id); err != nil {
		return err
	}
	if err := r.cercles.PullMemberAll(ctx, id); err != nil {
		return err
	}
	if err := r.events.PullParticipantAll(ctx, id); err != nil {
		return err
	}

	if hard {
		err := r.users.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	err := r.users.SoftDelete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// AddFriend records a one-directional friend link. Adding an existing friend
// is a no-op, adding oneself or an unknown user is an error.
func (r *Users) AddFriend(ctx context.Context, id, friendID primitive.ObjectID) error {
	if id == friendID {
		return ErrSelfFriend
	}
	if _, err := r.users.FindByID(ctx, friendID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFriendNotFound
		}
		return err
	}
	err := r.users.AddFriend(ctx, id, friendID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// RemoveFriend drops the link. Removing an absent friend still succeeds.
func (r *Users) RemoveFriend(ctx context.Context, id, friendID primitive.ObjectID) error {
	err := r.users.RemoveFriend(ctx, id, friendID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Authenticate verifies email+password and returns the stored user.
func (r *Users) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := r.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, ErrWrongPassword
	}
	return u, nil
}

// GetByEmail looks a user up by their unique email.
func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// ChangePassword swaps the password after checking the old one.
func (r *Users) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, u.Password) {
		return ErrWrongPassword
	}
	return r.SetPassword(ctx, id, newPassword)
}

// SetPassword stores a fresh hash without checking the old password. Reset
// flows call it after the reset token has been consumed.
func (r *Users) SetPassword(ctx context.Context, id primitive.ObjectID, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	err = r.users.UpdatePassword(ctx, id, hash)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func associationID(u *models.User) *primitive.ObjectID {
	if u.StudentAssociation == nil {
		return nil
	}
	return u.StudentAssociation.AssociationID
}

func sameAssociation(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
