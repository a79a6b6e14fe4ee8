package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jocke0406/Back-MyM/internal/models"
)

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "alice@example.be")

	w := ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.be",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]any
	decode(t, w, &body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	claims, err := ts.h.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.be", claims.Email)
	assert.Equal(t, "alice", claims.Pseudo)
	assert.Equal(t, models.RoleUser, claims.Role)

	// the issued token passes the auth gate
	w = ts.do(t, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "alice@example.be")

	w := ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.be",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "nobody@example.be",
		"password": "s3cretpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAdminRoleElevation(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "boss", testAdminEmail)

	w := ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    testAdminEmail,
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	decode(t, w, &body)
	claims, err := ts.h.JWT.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "alice@example.be")

	// token identifying alice herself
	w := ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.be",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	decode(t, w, &body)
	token, _ := body["token"].(string)

	w = ts.do(t, http.MethodPost, "/login/changePassword", token, gin.H{
		"oldPassword": "wrong",
		"newPassword": "brandnewpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/login/changePassword", token, gin.H{
		"oldPassword": "s3cretpass",
		"newPassword": "brandnewpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.be",
		"password": "brandnewpass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgotPasswordAntiEnumeration(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "alice@example.be")

	w := ts.do(t, http.MethodPost, "/login/forgotPassword", "", gin.H{"email": "alice@example.be"})
	assert.Equal(t, http.StatusOK, w.Code)

	// unknown address gets the exact same answer
	w = ts.do(t, http.MethodPost, "/login/forgotPassword", "", gin.H{"email": "nobody@example.be"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReinitializePassword(t *testing.T) {
	ts := newTestServer(t)
	created := registerUser(t, ts, "alice", "alice@example.be")
	id, _ := created["_id"].(string)

	token := ts.h.Resets.Issue(id)
	w := ts.do(t, http.MethodPost, "/login/reinitializePassword", "", gin.H{
		"token":       token,
		"newPassword": "brandnewpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a reset token is single use
	w = ts.do(t, http.MethodPost, "/login/reinitializePassword", "", gin.H{
		"token":       token,
		"newPassword": "anotherpass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.be",
		"password": "brandnewpass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
