package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jocke0406/Back-MyM/internal/models"
)

// userRequest is the payload for both create and update: a user PATCH must
// resubmit every required field, so the two operations share one shape.
type userRequest struct {
	Name               *models.Name              `json:"name"`
	Pseudo             string                    `json:"pseudo" binding:"required,max=50"`
	Email              string                    `json:"email" binding:"required,email"`
	Address            *models.UserAddress       `json:"address"`
	DateOfBirth        string                    `json:"dateOfBirth" binding:"required"`
	Password           string                    `json:"password" binding:"required,min=8"`
	Study              *models.Study             `json:"study"`
	Phone              string                    `json:"phone" binding:"omitempty,max=12"`
	Photo              string                    `json:"photo"`
	Cap                *capRequest              `json:"cap"`
	StudentAssociation *studentAssociationInput `json:"student_association"`
	Geolocalisation    *models.Geolocalisation  `json:"geolocalisation"`
}

type capRequest struct {
	HasCap       bool   `json:"hasCap"`
	Provider     string `json:"provider"`
	DeliveryDate string `json:"deliveryDate"`
	GoldStars    *int   `json:"goldStars"`
	SilverStars  *int   `json:"silverStars"`
	Comments     string `json:"comments" binding:"omitempty,max=500"`
}

type studentAssociationInput struct {
	Member        bool   `json:"member"`
	AssociationID string `json:"association_id" binding:"omitempty,len=24,hexadecimal"`
	Function      string `json:"function" binding:"omitempty,max=200"`
}

// toModel converts the bound payload, reporting the first malformed value.
func (req *userRequest) toModel() (*models.User, string) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, "Invalid dateOfBirth, expected an RFC3339 or YYYY-MM-DD date"
	}

	u := &models.User{
		Pseudo:          req.Pseudo,
		Email:           req.Email,
		Address:         req.Address,
		DateOfBirth:     dob,
		Study:           req.Study,
		Phone:           req.Phone,
		Photo:           req.Photo,
		Geolocalisation: req.Geolocalisation,
	}
	if req.Name != nil {
		u.Name = *req.Name
	}

	if req.Cap != nil {
		userCap := &models.Cap{
			HasCap:      req.Cap.HasCap,
			Provider:    req.Cap.Provider,
			GoldStars:   req.Cap.GoldStars,
			SilverStars: req.Cap.SilverStars,
			Comments:    req.Cap.Comments,
		}
		if req.Cap.DeliveryDate != "" {
			delivery, err := parseDate(req.Cap.DeliveryDate)
			if err != nil {
				return nil, "Invalid cap.deliveryDate, expected an RFC3339 or YYYY-MM-DD date"
			}
			if delivery.After(time.Now()) {
				return nil, "cap.deliveryDate cannot be in the future"
			}
			userCap.DeliveryDate = &delivery
		}
		u.Cap = userCap
	}

	if req.StudentAssociation != nil {
		sa := &models.StudentAssociation{
			Member:   req.StudentAssociation.Member,
			Function: req.StudentAssociation.Function,
		}
		if req.StudentAssociation.AssociationID != "" {
			assocID, err := parseObjectID(req.StudentAssociation.AssociationID)
			if err != nil {
				return nil, "Invalid student_association.association_id"
			}
			sa.AssociationID = &assocID
		}
		u.StudentAssociation = sa
	}
	return u, ""
}

// GET /users
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /users/:id/full
func (h *Handler) GetUserFull(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	full, err := h.Users.FullProfile(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// GET /users/:id/friends
func (h *Handler) GetUserFriends(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	friends, err := h.Users.Friends(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// GET /users/:id/events
func (h *Handler) GetUserEvents(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	events, err := h.Users.ParticipatedEvents(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, msg := req.toModel()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	created, err := h.Users.Create(c.Request.Context(), u, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, msg := req.toModel()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	updated, err := h.Users.Update(c.Request.Context(), id, u, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /users/:id?force=
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	hard, ok := parseForce(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id, hard); err != nil {
		h.writeError(c, err)
		return
	}
	if hard {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

type friendRequest struct {
	FriendID string `json:"friendId" binding:"required,len=24,hexadecimal"`
}

// PATCH /users/:id/addFriend
func (h *Handler) UserAddFriend(c *gin.Context) {
	h.mutateFriend(c, h.Users.AddFriend, "Friend added")
}

// PATCH /users/:id/removeFriend
func (h *Handler) UserRemoveFriend(c *gin.Context) {
	h.mutateFriend(c, h.Users.RemoveFriend, "Friend removed")
}

func (h *Handler) mutateFriend(c *gin.Context, op func(ctx context.Context, id, friendID primitive.ObjectID) error, msg string) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	friendID, err := parseObjectID(req.FriendID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendId"})
		return
	}
	if err := op(c.Request.Context(), id, friendID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
