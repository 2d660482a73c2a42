package database

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, fix *domain.LocationFix) error
	GetRecent(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error)
	GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error)
}

type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error)
	// UpdateStatus moves an alert from status from to status to. It returns
	// domain.ErrStaleStatus when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.AlertStatus) error
}

type TripRepository interface {
	Insert(ctx context.Context, trip *domain.Trip) error
	Get(ctx context.Context, id string) (*domain.Trip, error)
	SetVCHash(ctx context.Context, id, hash string) error
}

type ShareRepository interface {
	Insert(ctx context.Context, token *domain.ShareToken) error
	GetTripID(ctx context.Context, token string) (string, error)
}

type PlaceRepository interface {
	FindWithin(ctx context.Context, bound orb.Bound) ([]domain.Place, error)
}
