package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
)

func (f *fixture) pinClock(at time.Time) {
	f.events.now = func() time.Time { return at }
}

func TestEventsCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)

	location := f.mustCreateLocation(t, "Salle")
	cercle := f.mustCreateCercle(t, "Cercle")

	event, err := f.events.Create(ctx, &models.Event{
		Name:      "Cantus",
		StartAt:   now.Add(48 * time.Hour),
		EndAt:     now.Add(54 * time.Hour),
		LieuID:    location.ID,
		Organizer: cercle.ID,
	})
	require.NoError(t, err)
	assert.False(t, event.ID.IsZero())
	assert.NotNil(t, event.ParticipantsIDs)

	gotLoc, err := f.locations.Get(ctx, location.ID)
	require.NoError(t, err)
	assert.Contains(t, gotLoc.EventsID, event.ID)
}

func TestEventsCreateDateRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")

	_, err := f.events.Create(ctx, &models.Event{
		Name:    "Passe",
		StartAt: now.Add(-time.Hour),
		EndAt:   now.Add(time.Hour),
		LieuID:  location.ID,
	})
	assert.ErrorIs(t, err, ErrStartInPast)

	_, err = f.events.Create(ctx, &models.Event{
		Name:    "Inverse",
		StartAt: now.Add(2 * time.Hour),
		EndAt:   now.Add(time.Hour),
		LieuID:  location.ID,
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	// start exactly now is still in the past
	_, err = f.events.Create(ctx, &models.Event{
		Name:    "Maintenant",
		StartAt: now,
		EndAt:   now.Add(time.Hour),
		LieuID:  location.ID,
	})
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestEventsCreateUnknownLocationRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)

	_, err := f.events.Create(ctx, &models.Event{
		Name:    "Nulle part",
		StartAt: now.Add(time.Hour),
		EndAt:   now.Add(2 * time.Hour),
		LieuID:  primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrEventLocationMissing)

	// the half-inserted event must not survive the failed linkage
	events, err := f.events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventsDeleteUnlinksLocation(t *testing.T) {
	for _, hard := range []bool{false, true} {
		name := "soft"
		if hard {
			name = "hard"
		}
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
			f.pinClock(now)
			location := f.mustCreateLocation(t, "Salle")

			event, err := f.events.Create(ctx, &models.Event{
				Name:    "Cantus",
				StartAt: now.Add(time.Hour),
				EndAt:   now.Add(2 * time.Hour),
				LieuID:  location.ID,
			})
			require.NoError(t, err)

			require.NoError(t, f.events.Delete(ctx, event.ID, hard))

			gotLoc, err := f.locations.Get(ctx, location.ID)
			require.NoError(t, err)
			assert.NotContains(t, gotLoc.EventsID, event.ID)

			got, err := f.events.Get(ctx, event.ID)
			if hard {
				assert.ErrorIs(t, err, ErrEventNotFound)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, got.DeletedAt)
			}
		})
	}
}

func TestEventsParticipants(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")
	alice := f.mustCreateUser(t, "alice", "alice@example.be")

	event, err := f.events.Create(ctx, &models.Event{
		Name:    "Cantus",
		StartAt: now.Add(time.Hour),
		EndAt:   now.Add(2 * time.Hour),
		LieuID:  location.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.events.AddParticipant(ctx, event.ID, alice.ID))
	require.NoError(t, f.events.AddParticipant(ctx, event.ID, alice.ID))

	got, err := f.events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{alice.ID}, got.ParticipantsIDs)

	require.NoError(t, f.events.RemoveParticipant(ctx, event.ID, alice.ID))
	got, err = f.events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ParticipantsIDs)

	err = f.events.AddParticipant(ctx, primitive.NewObjectID(), alice.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventsFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")
	cercle := f.mustCreateCercle(t, "Cercle")
	alice := f.mustCreateUser(t, "alice", "alice@example.be")

	event, err := f.events.Create(ctx, &models.Event{
		Name:      "Cantus",
		StartAt:   now.Add(time.Hour),
		EndAt:     now.Add(2 * time.Hour),
		LieuID:    location.ID,
		Organizer: cercle.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.events.AddParticipant(ctx, event.ID, alice.ID))

	full, err := f.events.Full(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Location)
	assert.Equal(t, location.Name, full.Location.Name)
	require.NotNil(t, full.Organizer)
	assert.Equal(t, cercle.Name, full.Organizer.Name)
	require.Len(t, full.Participants, 1)
	assert.Equal(t, "alice", full.Participants[0].Pseudo)
}

func TestEventsFullDanglingRefs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")

	event, err := f.events.Create(ctx, &models.Event{
		Name:      "Orphelin",
		StartAt:   now.Add(time.Hour),
		EndAt:     now.Add(2 * time.Hour),
		LieuID:    location.ID,
		Organizer: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	require.NoError(t, f.locations.Delete(ctx, location.ID, true))

	full, err := f.events.Full(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, full.Location)
	assert.Nil(t, full.Organizer)
}
