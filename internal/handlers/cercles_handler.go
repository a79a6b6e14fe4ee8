package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jocke0406/Back-MyM/internal/models"
)

type createCercleRequest struct {
	Name        string `json:"name" binding:"required"`
	Hymne       string `json:"hymne"`
	Address     string `json:"address" binding:"required,len=24,hexadecimal"`
	Description string `json:"description"`
}

type updateCercleRequest struct {
	Name        *string `json:"name"`
	Hymne       *string `json:"hymne"`
	Address     *string `json:"address" binding:"omitempty,len=24,hexadecimal"`
	Description *string `json:"description"`
}

// GET /cercles
func (h *Handler) GetCercles(c *gin.Context) {
	cercles, err := h.Cercles.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cercles)
}

// GET /cercles/:id
func (h *Handler) GetCercle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	cercle, err := h.Cercles.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cercle)
}

// GET /cercles/:id/members
func (h *Handler) GetCercleMembers(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	members, err := h.Cercles.Members(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /cercles/:id/location
func (h *Handler) GetCercleLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	location, err := h.Cercles.Location(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// GET /cercles/:id/events
func (h *Handler) GetCercleEvents(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	events, err := h.Cercles.OrganizedEvents(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /cercles
func (h *Handler) CreateCercle(c *gin.Context) {
	var req createCercleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := parseObjectID(req.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	cercle := &models.Cercle{
		Name:        req.Name,
		Hymne:       req.Hymne,
		Address:     address,
		Description: req.Description,
	}
	created, err := h.Cercles.Create(c.Request.Context(), cercle)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /cercles/:id
func (h *Handler) UpdateCercle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req updateCercleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.CerclePatch{
		Name:        req.Name,
		Hymne:       req.Hymne,
		Description: req.Description,
	}
	if req.Address != nil {
		address, err := parseObjectID(*req.Address)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
			return
		}
		patch.Address = &address
	}

	updated, err := h.Cercles.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /cercles/:id?force=
func (h *Handler) DeleteCercle(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	hard, ok := parseForce(c)
	if !ok {
		return
	}
	if err := h.Cercles.Delete(c.Request.Context(), id, hard); err != nil {
		h.writeError(c, err)
		return
	}
	if hard {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cercle deleted"})
}
