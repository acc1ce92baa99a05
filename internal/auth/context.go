package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID      = "user_id"
	CtxFirebaseUID = "firebase_uid"
)

// UserID extracts the authenticated user's ID from the Gin context.
// This is set by RequireJWT.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// UserFirebaseUID extracts the Firebase UID when the request carried one.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
