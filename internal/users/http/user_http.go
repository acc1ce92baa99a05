package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamup-dev/teamup-backend/internal/auth"
	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/users/domain"
	"github.com/teamup-dev/teamup-backend/internal/users/service"
)

type Handler struct {
	users *service.UserService
}

func Register(rg *gin.RouterGroup, users *service.UserService) {
	h := &Handler{users: users}

	rg.GET("/me", h.me)
	rg.PATCH("/me", h.update)
	rg.POST("/me/profile-image/presign", h.presignImage)
	rg.PUT("/me/profile-image", h.setImage)
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.users.GetProfile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

type updateProfileReq struct {
	Name        *string         `json:"name"`
	GithubID    *string         `json:"github_id"`
	Portfolio   json.RawMessage `json:"portfolio"`
	Positions   []string        `json:"positions"`
	Proficiency *string         `json:"proficiency"`
	TechStacks  []string        `json:"tech_stacks"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.UpdateProfileInput{
		Name:       req.Name,
		GithubID:   req.GithubID,
		Portfolio:  req.Portfolio,
		TechStacks: req.TechStacks,
	}
	if req.Positions != nil {
		in.Positions = make([]matching.Position, len(req.Positions))
		for i, p := range req.Positions {
			in.Positions[i] = matching.Position(p)
		}
	}
	if req.Proficiency != nil {
		p := matching.Proficiency(*req.Proficiency)
		in.Proficiency = &p
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

type presignReq struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (h *Handler) presignImage(c *gin.Context) {
	var req presignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.FileName == "" || req.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.users.PresignProfileImage(c.Request.Context(), auth.UserID(c), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "upload": res})
}

type setImageReq struct {
	Key string `json:"key"`
}

func (h *Handler) setImage(c *gin.Context) {
	var req setImageReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	url, err := h.users.SetProfileImage(c.Request.Context(), auth.UserID(c), req.Key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile_image_url": url})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
