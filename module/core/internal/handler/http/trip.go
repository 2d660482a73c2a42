package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

type tripService interface {
	Create(ctx context.Context, req service.CreateTripRequest) (*domain.Trip, *domain.IssuedCredential, error)
	Get(ctx context.Context, id string) (*domain.Trip, error)
}

type shareService interface {
	Create(ctx context.Context, tripID string) (*domain.ShareToken, error)
	Resolve(ctx context.Context, token string) (*domain.SharedView, error)
}

type createTripRequest struct {
	UserID    string          `json:"user_id" binding:"required"`
	KYCDigest string          `json:"kyc_digest"`
	Itinerary json.RawMessage `json:"itinerary"`
	Emergency json.RawMessage `json:"emergency"`
	ValidFrom time.Time       `json:"valid_from" binding:"required"`
	ValidTo   time.Time       `json:"valid_to" binding:"required"`
}

type createTripResponse struct {
	Trip       *domain.Trip             `json:"trip"`
	Credential *domain.IssuedCredential `json:"credential"`
}

type TripHandler struct {
	tripSvc  tripService
	shareSvc shareService
}

func NewTripHandler(tripSvc tripService, shareSvc shareService) *TripHandler {
	return &TripHandler{tripSvc: tripSvc, shareSvc: shareSvc}
}

func (h *TripHandler) Register(r *gin.RouterGroup) {
	r.POST("/trips", h.CreateTrip)
	r.GET("/trips/:trip_id", h.GetTrip)
	r.POST("/trips/:trip_id/share", h.CreateShare)
	r.GET("/share/:token", h.ResolveShare)
}

func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip payload"})
		return
	}

	trip, cred, err := h.tripSvc.Create(c.Request.Context(), service.CreateTripRequest{
		UserID:    req.UserID,
		KYCDigest: req.KYCDigest,
		Itinerary: req.Itinerary,
		Emergency: req.Emergency,
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
	})
	if err != nil {
		abortWith(c, err, "failed to create trip")
		return
	}

	c.JSON(http.StatusCreated, createTripResponse{Trip: trip, Credential: cred})
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripSvc.Get(c.Request.Context(), c.Param("trip_id"))
	if err != nil {
		abortWith(c, err, "failed to fetch trip")
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) CreateShare(c *gin.Context) {
	token, err := h.shareSvc.Create(c.Request.Context(), c.Param("trip_id"))
	if err != nil {
		abortWith(c, err, "failed to create share link")
		return
	}
	c.JSON(http.StatusCreated, token)
}

func (h *TripHandler) ResolveShare(c *gin.Context) {
	view, err := h.shareSvc.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		abortWith(c, err, "failed to resolve share link")
		return
	}
	c.JSON(http.StatusOK, view)
}
