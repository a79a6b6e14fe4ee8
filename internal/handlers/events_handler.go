package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jocke0406/Back-MyM/internal/models"
)

type createEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	EndAt       time.Time `json:"endAt" binding:"required"`
	Description string    `json:"description"`
	LieuID      string    `json:"lieu_id" binding:"required,len=24,hexadecimal"`
	Organizer   string    `json:"organizer" binding:"required,len=24,hexadecimal"`
}

type updateEventRequest struct {
	Name        *string    `json:"name"`
	StartAt     *time.Time `json:"startAt"`
	EndAt       *time.Time `json:"endAt"`
	Description *string    `json:"description"`
	LieuID      *string    `json:"lieu_id" binding:"omitempty,len=24,hexadecimal"`
	Organizer   *string    `json:"organizer" binding:"omitempty,len=24,hexadecimal"`
}

type participantRequest struct {
	UserID string `json:"userId" binding:"required,len=24,hexadecimal"`
}

// GET /events
func (h *Handler) GetEvents(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	event, err := h.Events.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /events/:id/full
func (h *Handler) GetEventFull(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	full, err := h.Events.Full(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lieuID, err := parseObjectID(req.LieuID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lieu_id"})
		return
	}
	organizer, err := parseObjectID(req.Organizer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organizer"})
		return
	}

	event := &models.Event{
		Name:        req.Name,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Description: req.Description,
		LieuID:      lieuID,
		Organizer:   organizer,
	}
	created, err := h.Events.Create(c.Request.Context(), event)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.EventPatch{
		Name:        req.Name,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Description: req.Description,
	}
	if req.LieuID != nil {
		lieuID, err := parseObjectID(*req.LieuID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lieu_id"})
			return
		}
		patch.LieuID = &lieuID
	}
	if req.Organizer != nil {
		organizer, err := parseObjectID(*req.Organizer)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organizer"})
			return
		}
		patch.Organizer = &organizer
	}

	updated, err := h.Events.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /events/:id?force=
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	hard, ok := parseForce(c)
	if !ok {
		return
	}
	if err := h.Events.Delete(c.Request.Context(), id, hard); err != nil {
		h.writeError(c, err)
		return
	}
	if hard {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// PATCH /events/:id/addParticipant
func (h *Handler) EventAddParticipant(c *gin.Context) {
	h.mutateParticipant(c, true, "Participant added")
}

// PATCH /events/:id/removeParticipant
func (h *Handler) EventRemoveParticipant(c *gin.Context) {
	h.mutateParticipant(c, false, "Participant removed")
}

func (h *Handler) mutateParticipant(c *gin.Context, add bool, msg string) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := parseObjectID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	if add {
		err = h.Events.AddParticipant(c.Request.Context(), id, userID)
	} else {
		err = h.Events.RemoveParticipant(c.Request.Context(), id, userID)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
