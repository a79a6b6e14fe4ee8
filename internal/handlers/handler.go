// Package handlers holds the gin layer: request binding, identity extraction
// and translation of repository errors into the HTTP taxonomy. All data logic
// lives in internal/repository.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/repository"
	"github.com/jocke0406/Back-MyM/internal/services"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

type Handler struct {
	Users     *repository.Users
	Cercles   *repository.Cercles
	Locations *repository.Locations
	Events    *repository.Events

	JWT    *utils.JWTManager
	Mailer services.Mailer
	Resets *utils.ResetTokens

	AdminEmail string
	Log        *zap.Logger
}

func NewHandler(
	users *repository.Users,
	cercles *repository.Cercles,
	locations *repository.Locations,
	events *repository.Events,
	jwtm *utils.JWTManager,
	mailer services.Mailer,
	resets *utils.ResetTokens,
	adminEmail string,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Users:      users,
		Cercles:    cercles,
		Locations:  locations,
		Events:     events,
		JWT:        jwtm,
		Mailer:     mailer,
		Resets:     resets,
		AdminEmail: adminEmail,
		Log:        log,
	}
}

// writeError maps repository errors onto the response taxonomy. Anything not
// classified is a store/service failure: logged, generic 500 to the caller.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCercleNotFound),
		errors.Is(err, repository.ErrLocationNotFound),
		errors.Is(err, repository.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrTooYoung),
		errors.Is(err, repository.ErrAssociationRequired),
		errors.Is(err, repository.ErrSelfFriend),
		errors.Is(err, repository.ErrFriendNotFound),
		errors.Is(err, repository.ErrStartInPast),
		errors.Is(err, repository.ErrEndBeforeStart),
		errors.Is(err, repository.ErrEventLocationMissing),
		errors.Is(err, repository.ErrUnknownUser),
		errors.Is(err, repository.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Log.Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// objectIDParam parses a 24-hex path parameter, answering 400 itself when the
// value is malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseForce reads the shared delete-mode parameter: absent or "0" selects
// soft delete, "1" hard delete, anything else is a client error.
func parseForce(c *gin.Context) (hard bool, ok bool) {
	switch c.Query("force") {
	case "", "0":
		return false, true
	case "1":
		return true, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid force parameter, expected 0 or 1"})
		return false, false
	}
}

// parseDate accepts RFC3339 or a plain calendar date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}
