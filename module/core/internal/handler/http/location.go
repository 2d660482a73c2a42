package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

type locationService interface {
	GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error)
}

type ingestService interface {
	Ingest(ctx context.Context, fix *domain.LocationFix) (*service.AnomalyResult, error)
}

type locationRequest struct {
	Lat       *float64 `json:"lat" binding:"required"`
	Lng       *float64 `json:"lng" binding:"required"`
	SpeedKmh  *float64 `json:"speed_kmh"`
	AccuracyM *float64 `json:"accuracy_m"`
	Timestamp int64    `json:"timestamp"`
}

type locationResponse struct {
	TripID    string   `json:"trip_id"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	SpeedKmh  *float64 `json:"speed_kmh,omitempty"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type ingestResponse struct {
	Location  locationResponse      `json:"location"`
	Anomalies []domain.AnomalyEvent `json:"anomalies"`
}

type LocationHandler struct {
	locationSvc locationService
	ingestSvc   ingestService
	now         func() time.Time
}

func NewLocationHandler(locationSvc locationService, ingestSvc ingestService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc, ingestSvc: ingestSvc, now: time.Now}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.POST("/trips/:trip_id/locations", h.PostLocation)
	r.GET("/trips/:trip_id/location", h.GetLatestLocation)
	r.GET("/trips/:trip_id/locations", h.GetHistory)
}

func (h *LocationHandler) PostLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location payload"})
		return
	}

	captured := h.now()
	if req.Timestamp > 0 {
		captured = time.Unix(req.Timestamp, 0)
	}
	fix := &domain.LocationFix{
		TripID:     c.Param("trip_id"),
		Lat:        *req.Lat,
		Lng:        *req.Lng,
		SpeedKmh:   req.SpeedKmh,
		AccuracyM:  req.AccuracyM,
		CapturedAt: captured,
	}

	result, err := h.ingestSvc.Ingest(c.Request.Context(), fix)
	if err != nil {
		abortWith(c, err, "failed to save location")
		return
	}

	resp := ingestResponse{Location: toLocationResponse(fix), Anomalies: []domain.AnomalyEvent{}}
	if result != nil {
		resp.Anomalies = result.Anomalies
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LocationHandler) GetLatestLocation(c *gin.Context) {
	tripID := c.Param("trip_id")

	fix, err := h.locationSvc.GetLatest(c.Request.Context(), tripID)
	if err != nil {
		abortWith(c, err, "failed to fetch location")
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(fix))
}

func (h *LocationHandler) GetHistory(c *gin.Context) {
	tripID := c.Param("trip_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		TripID: tripID,
		Start:  time.Unix(start, 0),
		End:    time.Unix(end, 0),
	}

	fixes, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(fixes))
	for i := range fixes {
		results[i] = toLocationResponse(&fixes[i])
	}
	c.JSON(http.StatusOK, results)
}

func toLocationResponse(fix *domain.LocationFix) locationResponse {
	return locationResponse{
		TripID:    fix.TripID,
		Lat:       fix.Lat,
		Lng:       fix.Lng,
		SpeedKmh:  fix.SpeedKmh,
		AccuracyM: fix.AccuracyM,
		Timestamp: fix.CapturedAt.Unix(),
	}
}
