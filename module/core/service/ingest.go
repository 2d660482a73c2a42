package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

type anomalyComputer interface {
	Compute(ctx context.Context, candidate domain.LocationFix) (*AnomalyResult, error)
}

type locationSaver interface {
	SaveLocation(ctx context.Context, fix *domain.LocationFix) error
}

type zoneChecker interface {
	CheckAndAlert(ctx context.Context, fix *domain.LocationFix) error
}

// IngestService handles a live location update: anomaly check against the
// stored history, then persistence, then the risk zone check.
type IngestService struct {
	anomalies anomalyComputer
	locations locationSaver
	zones     zoneChecker
	logger    *zap.Logger
}

func NewIngestService(anomalies anomalyComputer, locations locationSaver, zones zoneChecker, logger *zap.Logger) *IngestService {
	return &IngestService{
		anomalies: anomalies,
		locations: locations,
		zones:     zones,
		logger:    logger,
	}
}

func (s *IngestService) Ingest(ctx context.Context, fix *domain.LocationFix) (*AnomalyResult, error) {
	if fix.TripID == "" {
		return nil, fmt.Errorf("%w: trip_id required", ErrInvalidInput)
	}
	if err := geo.ValidateCoordinates(fix.Lat, fix.Lng); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := s.anomalies.Compute(ctx, *fix)
	if err != nil {
		// a failed anomaly check must not drop the fix itself
		s.logger.Error("anomaly check failed", zap.String("trip_id", fix.TripID), zap.Error(err))
	}

	if err := s.locations.SaveLocation(ctx, fix); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}

	if err := s.zones.CheckAndAlert(ctx, fix); err != nil {
		s.logger.Error("risk zone check failed", zap.String("trip_id", fix.TripID), zap.Error(err))
	}
	return result, nil
}
