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

func TestLocationsFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")
	alice := f.mustCreateUser(t, "alice", "alice@example.be")
	bob := f.mustCreateUser(t, "bob", "bob@example.be")

	event, err := f.events.Create(ctx, &models.Event{
		Name: "Cantus", StartAt: now.Add(time.Hour), EndAt: now.Add(2 * time.Hour),
		LieuID: location.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.events.AddParticipant(ctx, event.ID, alice.ID))
	require.NoError(t, f.events.AddParticipant(ctx, event.ID, bob.ID))

	full, err := f.locations.Full(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, location.Name, full.Name)
	require.Len(t, full.Events, 1)
	assert.Equal(t, event.ID, full.Events[0].ID)
	assert.Equal(t, 2, full.Events[0].ParticipantsCount)
	assert.Len(t, full.Events[0].Participants, 2)
}

func TestLocationsFullEmpty(t *testing.T) {
	f := newFixture()
	location := f.mustCreateLocation(t, "Salle vide")

	full, err := f.locations.Full(context.Background(), location.ID)
	require.NoError(t, err)
	assert.Empty(t, full.Events)
}

func TestLocationsUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	location := f.mustCreateLocation(t, "Salle")

	name := "Salle renovee"
	geo := &models.Geolocalisation{Latitude: 50.85, Longitude: 4.35, Precision: 5}
	updated, err := f.locations.Update(ctx, location.ID, models.LocationPatch{Name: &name, Geolocalisation: geo})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	require.NotNil(t, updated.Geolocalisation)
	assert.Equal(t, 50.85, updated.Geolocalisation.Latitude)
	assert.Equal(t, location.Address, updated.Address)
}

func TestLocationsLinkEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	location := f.mustCreateLocation(t, "Salle")
	eventID := primitive.NewObjectID()

	require.NoError(t, f.locations.LinkEvent(ctx, location.ID, eventID, true))
	got, err := f.locations.Get(ctx, location.ID)
	require.NoError(t, err)
	assert.Contains(t, got.EventsID, eventID)

	// adding again keeps set semantics
	require.NoError(t, f.locations.LinkEvent(ctx, location.ID, eventID, true))
	got, err = f.locations.Get(ctx, location.ID)
	require.NoError(t, err)
	assert.Len(t, got.EventsID, 1)

	require.NoError(t, f.locations.LinkEvent(ctx, location.ID, eventID, false))
	got, err = f.locations.Get(ctx, location.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EventsID)

	err = f.locations.LinkEvent(ctx, primitive.NewObjectID(), eventID, true)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestLocationsDeleteDoesNotCascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.pinClock(now)
	location := f.mustCreateLocation(t, "Salle")

	event, err := f.events.Create(ctx, &models.Event{
		Name: "Cantus", StartAt: now.Add(time.Hour), EndAt: now.Add(2 * time.Hour),
		LieuID: location.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.locations.Delete(ctx, location.ID, true))

	// the event keeps its now-dangling lieu_id
	got, err := f.events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, location.ID, got.LieuID)
}
