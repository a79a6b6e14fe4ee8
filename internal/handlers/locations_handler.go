package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jocke0406/Back-MyM/internal/models"
)

type createLocationRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Address         models.LocationAddress  `json:"address" binding:"required"`
	Geolocalisation *models.Geolocalisation `json:"geolocalisation"`
}

type updateLocationRequest struct {
	Name            *string                 `json:"name"`
	Address         *models.LocationAddress `json:"address"`
	Geolocalisation *models.Geolocalisation `json:"geolocalisation"`
}

type linkEventRequest struct {
	EventID string `json:"eventId" binding:"required,len=24,hexadecimal"`
	Action  string `json:"action" binding:"required,oneof=add remove"`
}

// GET /locations
func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.Locations.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GET /locations/:id
func (h *Handler) GetLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	location, err := h.Locations.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// GET /locations/:id/full
func (h *Handler) GetLocationFull(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	full, err := h.Locations.Full(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// POST /locations
func (h *Handler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := &models.Location{
		Name:            req.Name,
		Address:         req.Address,
		Geolocalisation: req.Geolocalisation,
	}
	created, err := h.Locations.Create(c.Request.Context(), location)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /locations/:id
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.LocationPatch{
		Name:            req.Name,
		Address:         req.Address,
		Geolocalisation: req.Geolocalisation,
	}
	updated, err := h.Locations.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /locations/:id?force=
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	hard, ok := parseForce(c)
	if !ok {
		return
	}
	if err := h.Locations.Delete(c.Request.Context(), id, hard); err != nil {
		h.writeError(c, err)
		return
	}
	if hard {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}

// PATCH /locations/:id/events repairs the location/event linkage without
// touching the event document. Admin only.
func (h *Handler) LinkLocationEvent(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req linkEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eventID, err := parseObjectID(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid eventId"})
		return
	}

	if err := h.Locations.LinkEvent(c.Request.Context(), id, eventID, req.Action == "add"); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location events updated"})
}
