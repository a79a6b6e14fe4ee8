package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLocationFullView(t *testing.T) {
	ts := newTestServer(t)
	token := ts.userToken(t)
	location := createLocation(t, ts, token, "Salle")
	locationID, _ := location["_id"].(string)
	event := createEvent(t, ts, token, locationID, primitive.NewObjectID().Hex())
	eventID, _ := event["_id"].(string)

	alice := registerUser(t, ts, "alice", "alice@example.be")
	aliceID, _ := alice["_id"].(string)
	w := ts.do(t, http.MethodPatch, "/events/"+eventID+"/addParticipant", token, gin.H{"userId": aliceID})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/locations/"+locationID+"/full", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full map[string]any
	decode(t, w, &full)
	events, _ := full["events"].([]any)
	require.Len(t, events, 1)
	row, _ := events[0].(map[string]any)
	assert.Equal(t, float64(1), row["participants_count"])
}

func TestUpdateLocation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.userToken(t)
	location := createLocation(t, ts, token, "Salle")
	locationID, _ := location["_id"].(string)

	w := ts.do(t, http.MethodPatch, "/locations/"+locationID, token, gin.H{
		"geolocalisation": gin.H{"latitude": 50.85, "longitude": 4.35, "precision": 5},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got map[string]any
	decode(t, w, &got)
	assert.Equal(t, "Salle", got["name"])
	geo, _ := got["geolocalisation"].(map[string]any)
	require.NotNil(t, geo)
	assert.Equal(t, 50.85, geo["latitude"])
}

func TestLinkLocationEventAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	token := ts.userToken(t)
	admin := ts.adminToken(t)
	location := createLocation(t, ts, token, "Salle")
	locationID, _ := location["_id"].(string)
	eventID := primitive.NewObjectID().Hex()

	w := ts.do(t, http.MethodPatch, "/locations/"+locationID+"/events", token,
		gin.H{"eventId": eventID, "action": "add"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPatch, "/locations/"+locationID+"/events", admin,
		gin.H{"eventId": eventID, "action": "add"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/locations/"+locationID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	decode(t, w, &got)
	assert.Contains(t, got["eventsId"], eventID)

	w = ts.do(t, http.MethodPatch, "/locations/"+locationID+"/events", admin,
		gin.H{"eventId": eventID, "action": "drop"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/locations/"+locationID+"/events", admin,
		gin.H{"eventId": eventID, "action": "remove"})
	assert.Equal(t, http.StatusOK, w.Code)
}
