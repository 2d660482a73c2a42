package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/publisher"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

type SOSRequest struct {
	Lat     float64
	Lng     float64
	Trigger domain.SOSTrigger
	UserID  string
}

type sosDetails struct {
	Location  sosLocation       `json:"location"`
	Timestamp string            `json:"timestamp"`
	UserID    string            `json:"user_id,omitempty"`
	Trigger   domain.SOSTrigger `json:"trigger"`
}

type sosLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AlertService persists alerts and fans them out to officers. A persisted
// alert whose publish fails is still returned; the officer dashboard reads
// from the store.
type AlertService struct {
	repo      database.AlertRepository
	publisher publisher.AlertPublisher
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewAlertService(repo database.AlertRepository, pub publisher.AlertPublisher, logger *zap.Logger) *AlertService {
	return &AlertService{
		repo:      repo,
		publisher: pub,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *AlertService) Raise(ctx context.Context, tripID string, alertType domain.AlertType, details any) (*domain.Alert, error) {
	body, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal alert details: %w", err)
	}

	alert := &domain.Alert{
		ID:        s.newID(),
		TripID:    tripID,
		Type:      alertType,
		Status:    domain.AlertOpen,
		Details:   body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	if err := s.publisher.PublishAlert(ctx, alert); err != nil {
		s.logger.Warn("publish alert failed",
			zap.String("alert_id", alert.ID),
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}
	return alert, nil
}

func (s *AlertService) TriggerSOS(ctx context.Context, tripID string, req SOSRequest) (*domain.Alert, error) {
	if tripID == "" {
		return nil, fmt.Errorf("%w: trip_id required", ErrInvalidInput)
	}
	if err := geo.ValidateCoordinates(req.Lat, req.Lng); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Trigger == "" {
		req.Trigger = domain.TriggerPanicButton
	}
	if !req.Trigger.Valid() {
		return nil, fmt.Errorf("%w: unknown trigger %q", ErrInvalidInput, req.Trigger)
	}

	details := sosDetails{
		Location:  sosLocation{Lat: req.Lat, Lng: req.Lng},
		Timestamp: s.now().UTC().Format(time.RFC3339),
		UserID:    req.UserID,
		Trigger:   req.Trigger,
	}
	return s.Raise(ctx, tripID, domain.AlertPanic, details)
}

func (s *AlertService) List(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, query.Status)
	}
	return s.repo.List(ctx, query)
}

func (s *AlertService) UpdateStatus(ctx context.Context, id string, next domain.AlertStatus) (*domain.Alert, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	alert, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !alert.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, alert.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, alert.Status, next); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: %s changed before %s was applied", ErrInvalidTransition, alert.Status, next)
		}
		return nil, err
	}
	alert.Status = next
	return alert, nil
}
