package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store"
)

type Cercles struct {
	cercles   store.Cercles
	users     store.Users
	locations store.Locations
	events    store.Events
	log       *zap.Logger
}

func NewCercles(cercles store.Cercles, users store.Users, locations store.Locations, events store.Events, log *zap.Logger) *Cercles {
	return &Cercles{cercles: cercles, users: users, locations: locations, events: events, log: log}
}

func (r *Cercles) List(ctx context.Context) ([]models.Cercle, error) {
	return r.cercles.FindAll(ctx)
}

func (r *Cercles) Get(ctx context.Context, id primitive.ObjectID) (*models.Cercle, error) {
	c, err := r.cercles.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCercleNotFound
	}
	return c, err
}

// Members resolves members_ids to the public-safe member projection.
func (r *Cercles) Members(ctx context.Context, id primitive.ObjectID) ([]models.MemberView, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	users, err := r.users.FindByIDs(ctx, c.MembersIDs)
	if err != nil {
		return nil, err
	}
	members := make([]models.MemberView, 0, len(users))
	for _, u := range users {
		members = append(members, models.MemberView{
			ID:     u.ID,
			Name:   u.Name,
			Pseudo: u.Pseudo,
			Photo:  u.Photo,
			Study:  u.Study,
		})
	}
	return members, nil
}

// Location resolves the cercle's address reference.
func (r *Cercles) Location(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := r.locations.FindByID(ctx, c.Address)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrLocationNotFound
	}
	return l, err
}

// OrganizedEvents lists the events whose organizer is this cercle, projected
// to their public subset.
func (r *Cercles) OrganizedEvents(ctx context.Context, id primitive.ObjectID) ([]models.EventSummary, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	events, err := r.events.FindByOrganizer(ctx, id)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, models.EventSummary{ID: e.ID, Name: e.Name, StartAt: e.StartAt, EndAt: e.EndAt})
	}
	return summaries, nil
}

func (r *Cercles) Create(ctx context.Context, c *models.Cercle) (*models.Cercle, error) {
	if c.MembersIDs == nil {
		c.MembersIDs = []primitive.ObjectID{}
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil
	if err := r.cercles.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update merges the supplied fields. A new address reference is stored as-is:
// its existence is not verified at write time.
func (r *Cercles) Update(ctx context.Context, id primitive.ObjectID, patch models.CerclePatch) (*models.Cercle, error) {
	if err := r.cercles.Update(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCercleNotFound
		}
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete soft- or hard-deletes the cercle. Neither mode cascades into users'
// student_association or events' organizer references: those stay dangling,
// which is the documented baseline behavior of this repository.
func (r *Cercles) Delete(ctx context.Context, id primitive.ObjectID, hard bool) error {
	var err error
	if hard {
		err = r.cercles.Delete(ctx, id)
	} else {
		err = r.cercles.SoftDelete(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrCercleNotFound
	}
	return err
}
