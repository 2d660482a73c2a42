package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/detector"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

type historyReader interface {
	GetRecent(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error)
}

type alertRaiser interface {
	Raise(ctx context.Context, tripID string, alertType domain.AlertType, details any) (*domain.Alert, error)
}

type AnomalyResult struct {
	Anomalies     []domain.AnomalyEvent
	LocationCount int
	// Insufficient is set when the trip has fewer than two recorded fixes.
	Insufficient bool
}

// AnomalyService wraps the detector with the history read and alert write.
type AnomalyService struct {
	history  historyReader
	alerts   alertRaiser
	detector *detector.Detector
}

func NewAnomalyService(history historyReader, alerts alertRaiser, d *detector.Detector) *AnomalyService {
	return &AnomalyService{history: history, alerts: alerts, detector: d}
}

// Compute evaluates candidate against the trip's recorded history. The
// candidate itself must not be stored yet.
//
// Every detected event is recorded even when an earlier one fails, and any
// failures are returned joined. Recording is at-least-once: a caller that
// retries after an error may store an event a second time.
func (s *AnomalyService) Compute(ctx context.Context, candidate domain.LocationFix) (*AnomalyResult, error) {
	if candidate.TripID == "" {
		return nil, fmt.Errorf("%w: trip_id required", ErrInvalidInput)
	}
	if err := geo.ValidateCoordinates(candidate.Lat, candidate.Lng); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	recent, err := s.history.GetRecent(ctx, candidate.TripID, detector.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	if len(recent) < 2 {
		return &AnomalyResult{
			Anomalies:     []domain.AnomalyEvent{},
			LocationCount: len(recent),
			Insufficient:  true,
		}, nil
	}

	events, err := s.detector.Detect(recent, candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var errs []error
	for _, ev := range events {
		if _, err := s.alerts.Raise(ctx, candidate.TripID, domain.AlertAnomaly, ev); err != nil {
			errs = append(errs, fmt.Errorf("record %s anomaly: %w", ev.Type, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &AnomalyResult{Anomalies: events, LocationCount: len(recent)}, nil
}
