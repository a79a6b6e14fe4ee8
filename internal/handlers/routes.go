package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jocke0406/Back-MyM/internal/middleware"
)

// RegisterRoutes wires the REST surface. Registration and the login flows are
// public; everything else needs a bearer token; deletes and the location link
// repair additionally need the administrator token.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := middleware.Auth(h.JWT)
	admin := middleware.AdminAuth(h.JWT, h.AdminEmail)

	login := r.Group("/login")
	{
		login.POST("", h.Login)
		login.POST("/changePassword", auth, h.ChangePassword)
		login.POST("/forgotPassword", h.ForgotPassword)
		login.POST("/reinitializePassword", h.ReinitializePassword)
	}

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser) // registration stays open
		users.GET("", auth, h.GetUsers)
		users.GET("/:id", auth, h.GetUser)
		users.GET("/:id/full", auth, h.GetUserFull)
		users.GET("/:id/friends", auth, h.GetUserFriends)
		users.GET("/:id/events", auth, h.GetUserEvents)
		users.PATCH("/:id", auth, h.UpdateUser)
		users.PATCH("/:id/addFriend", auth, h.UserAddFriend)
		users.PATCH("/:id/removeFriend", auth, h.UserRemoveFriend)
		users.DELETE("/:id", admin, h.DeleteUser)
	}

	cercles := r.Group("/cercles", auth)
	{
		cercles.GET("", h.GetCercles)
		cercles.GET("/:id", h.GetCercle)
		cercles.GET("/:id/members", h.GetCercleMembers)
		cercles.GET("/:id/location", h.GetCercleLocation)
		cercles.GET("/:id/events", h.GetCercleEvents)
		cercles.POST("", h.CreateCercle)
		cercles.PATCH("/:id", h.UpdateCercle)
	}
	r.DELETE("/cercles/:id", admin, h.DeleteCercle)

	locations := r.Group("/locations", auth)
	{
		locations.GET("", h.GetLocations)
		locations.GET("/:id", h.GetLocation)
		locations.GET("/:id/full", h.GetLocationFull)
		locations.POST("", h.CreateLocation)
		locations.PATCH("/:id", h.UpdateLocation)
	}
	r.DELETE("/locations/:id", admin, h.DeleteLocation)
	r.PATCH("/locations/:id/events", admin, h.LinkLocationEvent)

	events := r.Group("/events", auth)
	{
		events.GET("", h.GetEvents)
		events.GET("/:id", h.GetEvent)
		events.GET("/:id/full", h.GetEventFull)
		events.POST("", h.CreateEvent)
		events.PATCH("/:id", h.UpdateEvent)
		events.PATCH("/:id/addParticipant", h.EventAddParticipant)
		events.PATCH("/:id/removeParticipant", h.EventRemoveParticipant)
	}
	r.DELETE("/events/:id", admin, h.DeleteEvent)
}
