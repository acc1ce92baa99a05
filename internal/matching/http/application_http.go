package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamup-dev/teamup-backend/internal/auth"
	"github.com/teamup-dev/teamup-backend/internal/matching/service"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
}

// RegisterApplications mounts the lifecycle routes. The apply route takes an
// extra per-user rate limit middleware; everything else rides the group's
// auth guard alone.
func RegisterApplications(rg *gin.RouterGroup, applications *service.ApplicationService, applyLimit gin.HandlerFunc) {
	h := &ApplicationHandler{applications: applications}

	rg.POST("/projects/:project_id/applications", applyLimit, h.apply)
	rg.POST("/projects/:project_id/eligibility", h.checkEligibility)
	rg.GET("/projects/:project_id/applications", h.listForProject)
	rg.POST("/projects/:project_id/applications/:user_id/accept", h.accept)
	rg.POST("/projects/:project_id/applications/:user_id/reject", h.reject)
	rg.DELETE("/projects/:project_id/applications/me", h.withdraw)
	rg.GET("/applications/me", h.listMine)
}

func (h *ApplicationHandler) apply(c *gin.Context) {
	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	app, err := h.applications.Apply(c.Request.Context(), userID, c.Param("project_id"), req.positions(), req.CoverLetter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": app})
}

func (h *ApplicationHandler) checkEligibility(c *gin.Context) {
	var req eligibilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	positions := applyReq{Positions: req.Positions}.positions()
	userID := auth.UserID(c)
	verdict, err := h.applications.CheckEligibility(c.Request.Context(), userID, c.Param("project_id"), positions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "eligible": verdict.OK, "reasons": verdict.Reasons})
}

func (h *ApplicationHandler) listForProject(c *gin.Context) {
	userID := auth.UserID(c)
	apps, err := h.applications.ListForProject(c.Request.Context(), userID, c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": apps})
}

func (h *ApplicationHandler) accept(c *gin.Context) {
	actorID := auth.UserID(c)
	app, err := h.applications.Accept(c.Request.Context(), actorID, c.Param("user_id"), c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application": app})
}

func (h *ApplicationHandler) reject(c *gin.Context) {
	actorID := auth.UserID(c)
	app, err := h.applications.Reject(c.Request.Context(), actorID, c.Param("user_id"), c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application": app})
}

func (h *ApplicationHandler) withdraw(c *gin.Context) {
	userID := auth.UserID(c)
	if err := h.applications.Withdraw(c.Request.Context(), userID, userID, c.Param("project_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ApplicationHandler) listMine(c *gin.Context) {
	userID := auth.UserID(c)
	apps, err := h.applications.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": apps})
}
