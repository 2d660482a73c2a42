package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

const shareTokenPrefix = "share-"

type tripGetter interface {
	Get(ctx context.Context, id string) (*domain.Trip, error)
}

type latestLocator interface {
	GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error)
}

type ShareService struct {
	repo      database.ShareRepository
	trips     tripGetter
	locations latestLocator
	now       func() time.Time
}

func NewShareService(repo database.ShareRepository, trips tripGetter, locations latestLocator) *ShareService {
	return &ShareService{repo: repo, trips: trips, locations: locations, now: time.Now}
}

func (s *ShareService) Create(ctx context.Context, tripID string) (*domain.ShareToken, error) {
	if _, err := s.trips.Get(ctx, tripID); err != nil {
		return nil, err
	}

	token := &domain.ShareToken{
		Token:     shareTokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", ""),
		TripID:    tripID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, token); err != nil {
		return nil, fmt.Errorf("insert share token: %w", err)
	}
	return token, nil
}

// Resolve returns the live view behind a share link. A trip with no fixes
// yet resolves with a nil location.
func (s *ShareService) Resolve(ctx context.Context, token string) (*domain.SharedView, error) {
	if !strings.HasPrefix(token, shareTokenPrefix) {
		return nil, domain.ErrNotFound
	}

	tripID, err := s.repo.GetTripID(ctx, token)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	view := &domain.SharedView{
		TripID:      trip.ID,
		SafetyScore: trip.SafetyScore,
		Emergency:   trip.Emergency,
	}

	latest, err := s.locations.GetLatest(ctx, tripID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		view.Location = latest
		view.LastUpdate = &latest.CapturedAt
	}
	return view, nil
}
