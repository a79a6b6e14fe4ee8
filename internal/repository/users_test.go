package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/store/memstore"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

type fixture struct {
	store     *memstore.Store
	users     *Users
	cercles   *Cercles
	locations *Locations
	events    *Events
}

func newFixture() *fixture {
	s := memstore.New()
	log := zap.NewNop()
	return &fixture{
		store:     s,
		users:     NewUsers(s.Users(), s.Cercles(), s.Events(), log),
		cercles:   NewCercles(s.Cercles(), s.Users(), s.Locations(), s.Events(), log),
		locations: NewLocations(s.Locations(), s.Events(), s.Users(), log),
		events:    NewEvents(s.Events(), s.Locations(), s.Users(), s.Cercles(), log),
	}
}

func validUser(pseudo, email string) *models.User {
	return &models.User{
		Pseudo:      pseudo,
		Email:       email,
		DateOfBirth: time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) mustCreateUser(t *testing.T, pseudo, email string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), validUser(pseudo, email), "s3cretpass")
	require.NoError(t, err)
	return u
}

func (f *fixture) mustCreateLocation(t *testing.T, name string) *models.Location {
	t.Helper()
	l, err := f.locations.Create(context.Background(), &models.Location{
		Name:    name,
		Address: models.LocationAddress{City: "Bruxelles"},
	})
	require.NoError(t, err)
	return l
}

func (f *fixture) mustCreateCercle(t *testing.T, name string) *models.Cercle {
	t.Helper()
	loc := f.mustCreateLocation(t, name+" HQ")
	c, err := f.cercles.Create(context.Background(), &models.Cercle{Name: name, Address: loc.ID})
	require.NoError(t, err)
	return c
}

func TestUsersCreateDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.users.Create(ctx, validUser("alice", "alice@example.be"), "plainpassword")
	require.NoError(t, err)

	assert.False(t, u.ID.IsZero())
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.DefaultPhoto, u.Photo)
	assert.NotNil(t, u.Friends)
	assert.Nil(t, u.DeletedAt)

	assert.NotEqual(t, "plainpassword", u.Password)
	assert.True(t, utils.CheckPasswordHash("plainpassword", u.Password))
}

func TestUsersCreateDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.mustCreateUser(t, "alice", "alice@example.be")
	_, err := f.users.Create(ctx, validUser("bob", "alice@example.be"), "s3cretpass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUsersCreateTooYoung(t *testing.T) {
	f := newFixture()

	u := validUser("kid", "kid@example.be")
	u.DateOfBirth = time.Now().AddDate(-MinimumAge, 0, 1)
	_, err := f.users.Create(context.Background(), u, "s3cretpass")
	assert.ErrorIs(t, err, ErrTooYoung)
}

func TestUsersCreateMemberWithoutAssociation(t *testing.T) {
	f := newFixture()

	u := validUser("alice", "alice@example.be")
	u.StudentAssociation = &models.StudentAssociation{Member: true}
	_, err := f.users.Create(context.Background(), u, "s3cretpass")
	assert.ErrorIs(t, err, ErrAssociationRequired)
}

func TestUsersCreateLinksCercleMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cercle := f.mustCreateCercle(t, "Cercle des Sciences")

	u := validUser("alice", "alice@example.be")
	u.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &cercle.ID}
	created, err := f.users.Create(ctx, u, "s3cretpass")
	require.NoError(t, err)

	got, err := f.cercles.Get(ctx, cercle.ID)
	require.NoError(t, err)
	assert.Contains(t, got.MembersIDs, created.ID)
}

func TestUsersUpdateMovesMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	oldCercle := f.mustCreateCercle(t, "Ancien")
	newCercle := f.mustCreateCercle(t, "Nouveau")

	u := validUser("alice", "alice@example.be")
	u.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &oldCercle.ID}
	created, err := f.users.Create(ctx, u, "s3cretpass")
	require.NoError(t, err)

	replacement := validUser("alice", "alice@example.be")
	replacement.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &newCercle.ID}
	_, err = f.users.Update(ctx, created.ID, replacement, "s3cretpass")
	require.NoError(t, err)

	gotOld, err := f.cercles.Get(ctx, oldCercle.ID)
	require.NoError(t, err)
	assert.NotContains(t, gotOld.MembersIDs, created.ID)

	gotNew, err := f.cercles.Get(ctx, newCercle.ID)
	require.NoError(t, err)
	assert.Contains(t, gotNew.MembersIDs, created.ID)
}

func TestUsersUpdatePreservesOwnedFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created := f.mustCreateUser(t, "alice", "alice@example.be")
	friend := f.mustCreateUser(t, "bob", "bob@example.be")
	require.NoError(t, f.users.AddFriend(ctx, created.ID, friend.ID))

	replacement := validUser("alice2", "alice@example.be")
	replacement.Role = "somethingElse"
	updated, err := f.users.Update(ctx, created.ID, replacement, "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Equal(t, []primitive.ObjectID{friend.ID}, updated.Friends)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "alice2", updated.Pseudo)
}

func TestUsersDeleteCascades(t *testing.T) {
	for _, hard := range []bool{false, true} {
		name := "soft"
		if hard {
			name = "hard"
		}
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			cercle := f.mustCreateCercle(t, "Cercle")
			location := f.mustCreateLocation(t, "Salle")

			victim := validUser("victim", "victim@example.be")
			victim.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &cercle.ID}
			created, err := f.users.Create(ctx, victim, "s3cretpass")
			require.NoError(t, err)

			friend := f.mustCreateUser(t, "friend", "friend@example.be")
			require.NoError(t, f.users.AddFriend(ctx, friend.ID, created.ID))

			event, err := f.events.Create(ctx, &models.Event{
				Name:      "TD",
				StartAt:   time.Now().Add(24 * time.Hour),
				EndAt:     time.Now().Add(30 * time.Hour),
				LieuID:    location.ID,
				Organizer: cercle.ID,
			})
			require.NoError(t, err)
			require.NoError(t, f.events.AddParticipant(ctx, event.ID, created.ID))

			require.NoError(t, f.users.Delete(ctx, created.ID, hard))

			gotFriend, err := f.users.Get(ctx, friend.ID)
			require.NoError(t, err)
			assert.NotContains(t, gotFriend.Friends, created.ID)

			gotCercle, err := f.cercles.Get(ctx, cercle.ID)
			require.NoError(t, err)
			assert.NotContains(t, gotCercle.MembersIDs, created.ID)

			gotEvent, err := f.events.Get(ctx, event.ID)
			require.NoError(t, err)
			assert.NotContains(t, gotEvent.ParticipantsIDs, created.ID)

			gotVictim, err := f.users.Get(ctx, created.ID)
			if hard {
				assert.ErrorIs(t, err, ErrUserNotFound)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, gotVictim.DeletedAt)
			}
		})
	}
}

func TestUsersDeleteUnknown(t *testing.T) {
	f := newFixture()
	err := f.users.Delete(context.Background(), primitive.NewObjectID(), false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUsersAddFriend(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")
	bob := f.mustCreateUser(t, "bob", "bob@example.be")

	require.NoError(t, f.users.AddFriend(ctx, alice.ID, bob.ID))
	// adding the same friend again keeps set semantics
	require.NoError(t, f.users.AddFriend(ctx, alice.ID, bob.ID))

	got, err := f.users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, got.Friends)

	// the link is one-directional
	gotBob, err := f.users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBob.Friends)
}

func TestUsersAddFriendSelf(t *testing.T) {
	f := newFixture()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")
	err := f.users.AddFriend(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFriend)
}

func TestUsersAddFriendUnknown(t *testing.T) {
	f := newFixture()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")
	err := f.users.AddFriend(context.Background(), alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrFriendNotFound)
}

func TestUsersRemoveFriendAbsent(t *testing.T) {
	f := newFixture()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")
	// removing a friend that was never added still succeeds
	err := f.users.RemoveFriend(context.Background(), alice.ID, primitive.NewObjectID())
	assert.NoError(t, err)
}

func TestUsersAuthenticate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")

	got, err := f.users.Authenticate(ctx, "alice@example.be", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = f.users.Authenticate(ctx, "alice@example.be", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = f.users.Authenticate(ctx, "nobody@example.be", "s3cretpass")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUsersChangePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustCreateUser(t, "alice", "alice@example.be")

	err := f.users.ChangePassword(ctx, alice.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, f.users.ChangePassword(ctx, alice.ID, "s3cretpass", "newpassword"))
	_, err = f.users.Authenticate(ctx, "alice@example.be", "newpassword")
	assert.NoError(t, err)
}

func TestUsersFullProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cercle := f.mustCreateCercle(t, "Cercle")
	location := f.mustCreateLocation(t, "Salle")

	u := validUser("alice", "alice@example.be")
	u.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &cercle.ID}
	created, err := f.users.Create(ctx, u, "s3cretpass")
	require.NoError(t, err)

	event, err := f.events.Create(ctx, &models.Event{
		Name:      "Soiree",
		StartAt:   time.Now().Add(24 * time.Hour),
		EndAt:     time.Now().Add(30 * time.Hour),
		LieuID:    location.ID,
		Organizer: cercle.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.events.AddParticipant(ctx, event.ID, created.ID))

	full, err := f.users.FullProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, full.Events, 1)
	assert.Equal(t, event.ID, full.Events[0].ID)
	require.NotNil(t, full.Cercle)
	assert.Equal(t, cercle.Name, full.Cercle.Name)
}

func TestUsersFullProfileDanglingCercle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing := primitive.NewObjectID()

	u := validUser("alice", "alice@example.be")
	u.StudentAssociation = &models.StudentAssociation{Member: true, AssociationID: &missing}
	created, err := f.users.Create(ctx, u, "s3cretpass")
	require.NoError(t, err)

	full, err := f.users.FullProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, full.Cercle)
}
