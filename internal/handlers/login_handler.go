package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/middleware"
	"github.com/jocke0406/Back-MyM/internal/repository"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type reinitializePasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// POST /login verifies email+password and issues a short-lived token. The
// configured administrator email gets the elevated role inside the token only.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	role := utils.EffectiveRole(user.Role, req.Email, h.AdminEmail)
	token, err := h.JWT.Generate(user, role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /login/changePassword requires an authenticated caller and the correct
// old password.
func (h *Handler) ChangePassword(c *gin.Context) {
	userIDHex := c.GetString(middleware.CtxUserID)
	userID, err := parseObjectID(userIDHex)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Users.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// POST /login/forgotPassword emails a time-boxed reset token. The response is
// the same whether or not the email exists, to avoid account enumeration.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err == nil {
		token := h.Resets.Issue(user.ID.Hex())
		// delivery must not block the response
		go func(email, token string) {
			if err := h.Mailer.SendPasswordReset(email, token); err != nil {
				h.Log.Error("could not send reset mail", zap.String("email", email), zap.Error(err))
			}
		}(user.Email, token)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset mail has been sent"})
}

// POST /login/reinitializePassword consumes a reset token once and stores the
// new password.
func (h *Handler) ReinitializePassword(c *gin.Context) {
	var req reinitializePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userIDHex, ok := h.Resets.Consume(req.Token)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}
	userID, err := parseObjectID(userIDHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	if err := h.Users.SetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reinitialized"})
}
