package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamup-dev/teamup-backend/internal/auth"
	"github.com/teamup-dev/teamup-backend/internal/matching/service"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

func RegisterDashboards(rg *gin.RouterGroup, dashboards *service.DashboardService) {
	h := &DashboardHandler{dashboards: dashboards}

	rg.GET("", h.combined)
	rg.GET("/owner", h.owner)
	rg.GET("/member", h.member)
}

func (h *DashboardHandler) combined(c *gin.Context) {
	userID := auth.UserID(c)
	d, err := h.dashboards.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": d})
}

func (h *DashboardHandler) owner(c *gin.Context) {
	userID := auth.UserID(c)
	d, err := h.dashboards.OwnerDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": d})
}

func (h *DashboardHandler) member(c *gin.Context) {
	userID := auth.UserID(c)
	d, err := h.dashboards.MemberDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": d})
}
