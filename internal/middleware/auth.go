package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jocke0406/Back-MyM/internal/utils"
)

// Context keys under which the auth gate stores the caller's identity.
const (
	CtxUserID = "userID"
	CtxEmail  = "userEmail"
	CtxRole   = "userRole"
	CtxPseudo = "userPseudo"
)

// Auth requires a valid bearer token: 401 when no credentials are presented,
// 403 when the token does not verify.
func Auth(jwtm *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, jwtm)
		if !ok {
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// AdminAuth additionally requires the token's email to match the configured
// administrator address.
func AdminAuth(jwtm *utils.JWTManager, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, jwtm)
		if !ok {
			return
		}
		if claims.Email != adminEmail {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtm *utils.JWTManager) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := jwtm.Parse(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(CtxUserID, claims.ID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxPseudo, claims.Pseudo)
}
