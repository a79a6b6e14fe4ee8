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

type Events struct {
	events    store.Events
	locations store.Locations
	users     store.Users
	cercles   store.Cercles
	log       *zap.Logger
	now       func() time.Time
}

func NewEvents(events store.Events, locations store.Locations, users store.Users, cercles store.Cercles, log *zap.Logger) *Events {
	return &Events{events: events, locations: locations, users: users, cercles: cercles, log: log, now: time.Now}
}

func (r *Events) List(ctx context.Context) ([]models.Event, error) {
	return r.events.FindAll(ctx)
}

func (r *Events) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	e, err := r.events.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// Full is the three-way joined view: location, participants and organizer.
// Dangling references yield a row without the missing side rather than an
// error, since deletes of cercles and locations do not cascade here.
func (r *Events) Full(ctx context.Context, id primitive.ObjectID) (*models.EventFull, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	full := &models.EventFull{
		ID:          e.ID,
		Name:        e.Name,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Description: e.Description,
	}

	location, err := r.locations.FindByID(ctx, e.LieuID)
	switch {
	case err == nil:
		full.Location = &models.LocationSummary{ID: location.ID, Name: location.Name, Address: location.Address}
	case errors.Is(err, store.ErrNotFound):
		r.log.Warn("event references missing location",
			zap.String("event", id.Hex()), zap.String("location", e.LieuID.Hex()))
	default:
		return nil, err
	}

	participants, err := r.users.FindByIDs(ctx, e.ParticipantsIDs)
	if err != nil {
		return nil, err
	}
	full.Participants = make([]models.FriendView, 0, len(participants))
	for _, p := range participants {
		full.Participants = append(full.Participants, models.FriendView{
			ID:              p.ID,
			Name:            p.Name,
			Pseudo:          p.Pseudo,
			Photo:           p.Photo,
			Geolocalisation: p.Geolocalisation,
		})
	}

	organizer, err := r.cercles.FindByID(ctx, e.Organizer)
	switch {
	case err == nil:
		full.Organizer = &models.CercleSummary{ID: organizer.ID, Name: organizer.Name}
	case errors.Is(err, store.ErrNotFound):
		r.log.Warn("event references missing cercle",
			zap.String("event", id.Hex()), zap.String("cercle", e.Organizer.Hex()))
	default:
		return nil, err
	}
	return full, nil
}

// Create checks the date rules, inserts the event, then pushes its id onto the
// target location's eventsId. When the location turns out not to exist, the
// just-inserted event is deleted again and the creation fails. The two writes
// are not atomic: a crash between them leaves an orphaned event behind.
func (r *Events) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	now := r.now()
	if !e.StartAt.After(now) {
		return nil, ErrStartInPast
	}
	if !e.EndAt.After(e.StartAt) {
		return nil, ErrEndBeforeStart
	}

	if e.ParticipantsIDs == nil {
		e.ParticipantsIDs = []primitive.ObjectID{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	e.DeletedAt = nil

	if err := r.events.Insert(ctx, e); err != nil {
		return nil, err
	}

	if err := r.locations.AddEvent(ctx, e.LieuID, e.ID); err != nil {
		if rollbackErr := r.events.Delete(ctx, e.ID); rollbackErr != nil {
			r.log.Error("could not roll back orphaned event",
				zap.String("event", e.ID.Hex()), zap.Error(rollbackErr))
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventLocationMissing
		}
		return nil, err
	}
	return e, nil
}

// Update merges the supplied fields. Reference fields are converted but not
// existence-checked; the location linkage is not repaired here.
func (r *Events) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) (*models.Event, error) {
	if err := r.events.Update(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete pulls the event's id from its location's eventsId, then soft- or
// hard-deletes the document. The unlink runs in both modes.
func (r *Events) Delete(ctx context.Context, id primitive.ObjectID, hard bool) error {
	e, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.locations.RemoveEvent(ctx, e.LieuID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if hard {
		err = r.events.Delete(ctx, id)
	} else {
		err = r.events.SoftDelete(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// AddParticipant registers a user on the event, set semantics. The user's own
// profile is not touched.
func (r *Events) AddParticipant(ctx context.Context, id, userID primitive.ObjectID) error {
	err := r.events.AddParticipant(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

func (r *Events) RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID) error {
	err := r.events.RemoveParticipant(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
