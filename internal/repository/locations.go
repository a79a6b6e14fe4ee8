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

type Locations struct {
	locations store.Locations
	events    store.Events
	users     store.Users
	log       *zap.Logger
}

func NewLocations(locations store.Locations, events store.Events, users store.Users, log *zap.Logger) *Locations {
	return &Locations{locations: locations, events: events, users: users, log: log}
}

func (r *Locations) List(ctx context.Context) ([]models.Location, error) {
	return r.locations.FindAll(ctx)
}

func (r *Locations) Get(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	l, err := r.locations.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrLocationNotFound
	}
	return l, err
}

// Full joins the location's eventsId to the event documents and each event to
// its participants, one row per event with the participant count aggregated.
func (r *Locations) Full(ctx context.Context, id primitive.ObjectID) (*models.LocationFull, error) {
	l, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := r.events.FindByIDs(ctx, l.EventsID)
	if err != nil {
		return nil, err
	}

	full := &models.LocationFull{
		ID:              l.ID,
		Name:            l.Name,
		Address:         l.Address,
		Geolocalisation: l.Geolocalisation,
		Events:          make([]models.LocationEventRow, 0, len(events)),
	}
	for _, e := range events {
		participants, err := r.users.FindByIDs(ctx, e.ParticipantsIDs)
		if err != nil {
			return nil, err
		}
		views := make([]models.FriendView, 0, len(participants))
		for _, p := range participants {
			views = append(views, models.FriendView{
				ID:              p.ID,
				Name:            p.Name,
				Pseudo:          p.Pseudo,
				Photo:           p.Photo,
				Geolocalisation: p.Geolocalisation,
			})
		}
		full.Events = append(full.Events, models.LocationEventRow{
			ID:                e.ID,
			Name:              e.Name,
			StartAt:           e.StartAt,
			EndAt:             e.EndAt,
			Participants:      views,
			ParticipantsCount: len(e.ParticipantsIDs),
		})
	}
	return full, nil
}

func (r *Locations) Create(ctx context.Context, l *models.Location) (*models.Location, error) {
	if l.EventsID == nil {
		l.EventsID = []primitive.ObjectID{}
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	l.DeletedAt = nil
	if err := r.locations.Insert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Locations) Update(ctx context.Context, id primitive.ObjectID, patch models.LocationPatch) (*models.Location, error) {
	if err := r.locations.Update(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete soft- or hard-deletes the location. Events pointing at it keep their
// now-dangling lieu_id: this repository does not cascade location deletion.
func (r *Locations) Delete(ctx context.Context, id primitive.ObjectID, hard bool) error {
	var err error
	if hard {
		err = r.locations.Delete(ctx, id)
	} else {
		err = r.locations.SoftDelete(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrLocationNotFound
	}
	return err
}

// LinkEvent adds or removes a single event id on the location's eventsId,
// without touching the event document. Privileged callers use it to repair the
// location/event linkage.
func (r *Locations) LinkEvent(ctx context.Context, id, eventID primitive.ObjectID, add bool) error {
	var err error
	if add {
		err = r.locations.AddEvent(ctx, id, eventID)
	} else {
		err = r.locations.RemoveEvent(ctx, id, eventID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrLocationNotFound
	}
	return err
}
