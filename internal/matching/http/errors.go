package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

// respondError maps domain errors onto HTTP statuses. An eligibility failure
// is not an error shape; it carries the full reason list back to the client.
func respondError(c *gin.Context, err error) {
	var inel *domain.IneligibleError
	if errors.As(err, &inel) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"ok":       false,
			"error":    "not eligible",
			"eligible": false,
			"reasons":  inel.Reasons,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyApplied),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrPositionFull),
		errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
