package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

type anomalyService interface {
	Compute(ctx context.Context, candidate domain.LocationFix) (*service.AnomalyResult, error)
}

type credentialService interface {
	Issue(req domain.CredentialRequest) (*domain.IssuedCredential, error)
	Verify(token string) (*domain.VerifiableCredential, error)
}

type placeService interface {
	Nearby(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error)
}

type crowdService interface {
	Forecast(ctx context.Context) ([]domain.CrowdPrediction, error)
}

type coordinates struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type computeAnomaliesRequest struct {
	TripID          string       `json:"trip_id" binding:"required"`
	CurrentLocation *coordinates `json:"current_location" binding:"required"`
	CapturedAt      *time.Time   `json:"captured_at"`
}

type computeAnomaliesResponse struct {
	Anomalies     []domain.AnomalyEvent `json:"anomalies"`
	LocationCount *int                  `json:"location_count,omitempty"`
}

type verifyVCRequest struct {
	VCJWT string `json:"vc_jwt" binding:"required"`
}

type verifyVCResponse struct {
	Valid bool                         `json:"valid"`
	VC    *domain.VerifiableCredential `json:"vc"`
}

type nearbyPlacesRequest struct {
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
	RadiusKm float64  `json:"radius_km"`
}

// FunctionHandler serves the RPC style endpoints the mobile app calls.
type FunctionHandler struct {
	anomalySvc    anomalyService
	credentialSvc credentialService
	placeSvc      placeService
	crowdSvc      crowdService
	now           func() time.Time
}

func NewFunctionHandler(anomalySvc anomalyService, credentialSvc credentialService, placeSvc placeService, crowdSvc crowdService) *FunctionHandler {
	return &FunctionHandler{
		anomalySvc:    anomalySvc,
		credentialSvc: credentialSvc,
		placeSvc:      placeSvc,
		crowdSvc:      crowdSvc,
		now:           time.Now,
	}
}

func (h *FunctionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/functions")
	g.POST("/compute_anomalies", h.ComputeAnomalies)
	g.POST("/issue_vc", h.IssueVC)
	g.POST("/verify_vc", h.VerifyVC)
	g.POST("/nearby_places", h.NearbyPlaces)
	g.GET("/predictive_crowd", h.PredictiveCrowd)
	g.POST("/predictive_crowd", h.PredictiveCrowd)
}

func (h *FunctionHandler) ComputeAnomalies(c *gin.Context) {
	var req computeAnomaliesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute anomalies"})
		return
	}

	captured := h.now()
	if req.CapturedAt != nil {
		captured = *req.CapturedAt
	}
	candidate := domain.LocationFix{
		TripID:     req.TripID,
		Lat:        *req.CurrentLocation.Lat,
		Lng:        *req.CurrentLocation.Lng,
		CapturedAt: captured,
	}

	result, err := h.anomalySvc.Compute(c.Request.Context(), candidate)
	switch {
	case errors.Is(err, service.ErrHistoryUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location history"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute anomalies"})
		return
	}

	resp := computeAnomaliesResponse{Anomalies: result.Anomalies}
	if !result.Insufficient {
		resp.LocationCount = &result.LocationCount
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FunctionHandler) IssueVC(c *gin.Context) {
	var req domain.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credential request"})
		return
	}

	issued, err := h.credentialSvc.Issue(req)
	if err != nil {
		abortWith(c, err, "Failed to issue verifiable credential")
		return
	}
	c.JSON(http.StatusOK, issued)
}

// VerifyVC checks a credential token issued by IssueVC and returns the
// credential it carries.
func (h *FunctionHandler) VerifyVC(c *gin.Context) {
	var req verifyVCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vc_jwt is required"})
		return
	}

	vc, err := h.credentialSvc.Verify(req.VCJWT)
	if err != nil {
		abortWith(c, err, "Failed to verify credential")
		return
	}
	c.JSON(http.StatusOK, verifyVCResponse{Valid: true, VC: vc})
}

func (h *FunctionHandler) NearbyPlaces(c *gin.Context) {
	var req nearbyPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	places, err := h.placeSvc.Nearby(c.Request.Context(), domain.NearbyQuery{
		Lat:      *req.Lat,
		Lng:      *req.Lng,
		RadiusKm: req.RadiusKm,
	})
	if err != nil {
		abortWith(c, err, "Failed to fetch nearby places")
		return
	}
	c.JSON(http.StatusOK, places)
}

func (h *FunctionHandler) PredictiveCrowd(c *gin.Context) {
	preds, err := h.crowdSvc.Forecast(c.Request.Context())
	if err != nil {
		abortWith(c, err, "Failed to generate predictive analytics")
		return
	}
	c.JSON(http.StatusOK, preds)
}
