package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

const defaultAlertLimit = 50

type alertService interface {
	TriggerSOS(ctx context.Context, tripID string, req service.SOSRequest) (*domain.Alert, error)
	List(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error)
	UpdateStatus(ctx context.Context, id string, next domain.AlertStatus) (*domain.Alert, error)
}

type sosRequest struct {
	Lat     *float64          `json:"lat" binding:"required"`
	Lng     *float64          `json:"lng" binding:"required"`
	Trigger domain.SOSTrigger `json:"trigger"`
	UserID  string            `json:"user_id"`
}

type statusRequest struct {
	Status domain.AlertStatus `json:"status" binding:"required"`
}

type AlertHandler struct {
	alertSvc alertService
}

func NewAlertHandler(alertSvc alertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

func (h *AlertHandler) Register(r *gin.RouterGroup) {
	r.POST("/trips/:trip_id/sos", h.TriggerSOS)
	r.GET("/alerts", h.ListAlerts)
	r.PUT("/alerts/:alert_id/status", h.UpdateStatus)
}

func (h *AlertHandler) TriggerSOS(c *gin.Context) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	alert, err := h.alertSvc.TriggerSOS(c.Request.Context(), c.Param("trip_id"), service.SOSRequest{
		Lat:     *req.Lat,
		Lng:     *req.Lng,
		Trigger: req.Trigger,
		UserID:  req.UserID,
	})
	if err != nil {
		abortWith(c, err, "failed to raise sos")
		return
	}

	c.JSON(http.StatusCreated, alert)
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	alerts, err := h.alertSvc.List(c.Request.Context(), &domain.AlertQuery{
		Status: domain.AlertStatus(c.Query("status")),
		Limit:  limit,
	})
	if err != nil {
		abortWith(c, err, "failed to fetch alerts")
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	alert, err := h.alertSvc.UpdateStatus(c.Request.Context(), c.Param("alert_id"), req.Status)
	if err != nil {
		abortWith(c, err, "failed to update alert")
		return
	}

	c.JSON(http.StatusOK, alert)
}
