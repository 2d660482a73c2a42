package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

type credentialIssuer interface {
	Issue(req domain.CredentialRequest) (*domain.IssuedCredential, error)
}

type CreateTripRequest struct {
	UserID    string
	KYCDigest string
	Itinerary json.RawMessage
	Emergency json.RawMessage
	ValidFrom time.Time
	ValidTo   time.Time
}

type TripService struct {
	repo        database.TripRepository
	credentials credentialIssuer
	now         func() time.Time
	newID       func() string
}

func NewTripService(repo database.TripRepository, credentials credentialIssuer) *TripService {
	return &TripService{
		repo:        repo,
		credentials: credentials,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Create stores a new trip and attaches the hash of its freshly issued
// credential.
func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, *domain.IssuedCredential, error) {
	if req.UserID == "" {
		return nil, nil, fmt.Errorf("%w: user_id required", ErrInvalidInput)
	}
	if req.ValidFrom.IsZero() || req.ValidTo.IsZero() || !req.ValidTo.After(req.ValidFrom) {
		return nil, nil, fmt.Errorf("%w: valid_to must be after valid_from", ErrInvalidInput)
	}

	trip := &domain.Trip{
		ID:          s.newID(),
		UserID:      req.UserID,
		Itinerary:   req.Itinerary,
		Emergency:   req.Emergency,
		SafetyScore: domain.DefaultSafetyScore,
		ValidFrom:   req.ValidFrom.UTC(),
		ValidTo:     req.ValidTo.UTC(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, trip); err != nil {
		return nil, nil, fmt.Errorf("insert trip: %w", err)
	}

	cred, err := s.credentials.Issue(domain.CredentialRequest{
		UserID:    trip.UserID,
		TripID:    trip.ID,
		KYCDigest: req.KYCDigest,
		ValidTo:   trip.ValidTo.Format(time.RFC3339),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("issue credential: %w", err)
	}
	if err := s.repo.SetVCHash(ctx, trip.ID, cred.VCHash); err != nil {
		return nil, nil, fmt.Errorf("store credential hash: %w", err)
	}
	trip.VCHash = &cred.VCHash

	return trip, cred, nil
}

func (s *TripService) Get(ctx context.Context, id string) (*domain.Trip, error) {
	return s.repo.Get(ctx, id)
}
