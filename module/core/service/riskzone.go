package service

import (
	"context"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

type RiskZoneService struct {
	alerts alertRaiser
	zones  []domain.RiskZone
}

func NewRiskZoneService(alerts alertRaiser, zones []domain.RiskZone) *RiskZoneService {
	return &RiskZoneService{
		alerts: alerts,
		zones:  zones,
	}
}

func (s *RiskZoneService) Zones() []domain.RiskZone {
	return s.zones
}

func (s *RiskZoneService) CheckAndAlert(ctx context.Context, fix *domain.LocationFix) error {
	for _, z := range s.zones {
		dist := geo.Distance(fix.Lat, fix.Lng, z.Lat, z.Lng)
		if dist > z.RadiusM {
			continue
		}
		details := domain.GeofenceDetails{
			Zone:      z.Name,
			Level:     z.Level,
			Lat:       fix.Lat,
			Lng:       fix.Lng,
			DistanceM: dist,
		}
		if _, err := s.alerts.Raise(ctx, fix.TripID, domain.AlertGeofence, details); err != nil {
			return err
		}
	}
	return nil
}
