package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/repository"
	"github.com/jocke0406/Back-MyM/internal/services"
	"github.com/jocke0406/Back-MyM/internal/store/memstore"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

const testAdminEmail = "admin@mym.be"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	h      *Handler
	store  *memstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := memstore.New()
	log := zap.NewNop()

	users := repository.NewUsers(s.Users(), s.Cercles(), s.Events(), log)
	cercles := repository.NewCercles(s.Cercles(), s.Users(), s.Locations(), s.Events(), log)
	locations := repository.NewLocations(s.Locations(), s.Events(), s.Users(), log)
	events := repository.NewEvents(s.Events(), s.Locations(), s.Users(), s.Cercles(), log)

	jwtm := utils.NewJWTManager("test-secret", time.Hour)
	resets := utils.NewResetTokens(time.Minute)
	h := NewHandler(users, cercles, locations, events,
		jwtm, &services.LogMailer{Log: log}, resets, testAdminEmail, log)

	router := gin.New()
	h.RegisterRoutes(router)
	return &testServer{router: router, h: h, store: s}
}

// userToken signs a token for an arbitrary authenticated caller.
func (ts *testServer) userToken(t *testing.T) string {
	t.Helper()
	u := &models.User{Email: "caller@example.be", Pseudo: "caller"}
	token, err := ts.h.JWT.Generate(u, models.RoleUser)
	require.NoError(t, err)
	return token
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	u := &models.User{Email: testAdminEmail, Pseudo: "admin"}
	token, err := ts.h.JWT.Generate(u, models.RoleSuperAdmin)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, ts *testServer, pseudo, email string) map[string]any {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/users", "", gin.H{
		"pseudo":      pseudo,
		"email":       email,
		"dateOfBirth": "2000-05-01",
		"password":    "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body map[string]any
	decode(t, w, &body)
	return body
}

func createLocation(t *testing.T, ts *testServer, token, name string) map[string]any {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/locations", token, gin.H{
		"name":    name,
		"address": gin.H{"city": "Bruxelles"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body map[string]any
	decode(t, w, &body)
	return body
}

func createCercle(t *testing.T, ts *testServer, token, name, addressID string) map[string]any {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/cercles", token, gin.H{
		"name":    name,
		"address": addressID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body map[string]any
	decode(t, w, &body)
	return body
}
