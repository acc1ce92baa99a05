package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamup-dev/teamup-backend/internal/auth/service"
	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
)

type Handler struct {
	auth *service.AuthService
}

// Register mounts the unauthenticated auth routes.
func Register(rg *gin.RouterGroup, auth *service.AuthService) {
	h := &Handler{auth: auth}

	rg.POST("/login", h.login)
	rg.POST("/onboard", h.onboard)
}

type loginReq struct {
	IDToken string `json:"id_token"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": res})
}

type onboardReq struct {
	IDToken         string          `json:"id_token"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	GithubID        string          `json:"github_id"`
	ProfileImageURL string          `json:"profile_image_url"`
	Portfolio       json.RawMessage `json:"portfolio"`
	Positions       []string        `json:"positions"`
	Proficiency     string          `json:"proficiency"`
	TechStacks      []string        `json:"tech_stacks"`
}

func (h *Handler) onboard(c *gin.Context) {
	var req onboardReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	positions := make([]matching.Position, len(req.Positions))
	for i, p := range req.Positions {
		positions[i] = matching.Position(p)
	}

	res, err := h.auth.Onboard(c.Request.Context(), req.IDToken, service.OnboardInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		GithubID:        req.GithubID,
		ProfileImageURL: req.ProfileImageURL,
		Portfolio:       req.Portfolio,
		Positions:       positions,
		Proficiency:     matching.Proficiency(req.Proficiency),
		TechStacks:      req.TechStacks,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "result": res})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidIDToken):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
