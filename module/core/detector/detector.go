package detector

import (
	"fmt"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

// HistoryWindow is the number of most recent fixes the detector looks at.
const HistoryWindow = 5

type Config struct {
	TeleportSpeedKmh float64
	// MinTeleportDisplacementM is the displacement a fix must exceed to be
	// flagged as a teleport when its timestamp is not after the last fix.
	MinTeleportDisplacementM float64
	DropOffMaxMovementM      float64
}

func DefaultConfig() Config {
	return Config{
		TeleportSpeedKmh:         150,
		MinTeleportDisplacementM: 0,
		DropOffMaxMovementM:      30,
	}
}

// Detector classifies a location transition. It keeps no state between
// calls and is safe for concurrent use.
type Detector struct {
	cfg Config
}

func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

func Default() *Detector {
	return New(DefaultConfig())
}

// Detect evaluates candidate against history, which must be ordered most
// recent first. Fixes beyond HistoryWindow are ignored. Fewer than two
// history entries yields no events. Invalid coordinates are an error.
func (d *Detector) Detect(history []domain.LocationFix, candidate domain.LocationFix) ([]domain.AnomalyEvent, error) {
	if err := geo.ValidateCoordinates(candidate.Lat, candidate.Lng); err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}
	if len(history) > HistoryWindow {
		history = history[:HistoryWindow]
	}
	for i, fix := range history {
		if err := geo.ValidateCoordinates(fix.Lat, fix.Lng); err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
	}

	events := []domain.AnomalyEvent{}
	if len(history) < 2 {
		return events, nil
	}

	if ev, ok := d.checkTeleport(history[0], candidate); ok {
		events = append(events, ev)
	}
	if ev, ok := d.checkDropOff(history, candidate.TripID); ok {
		events = append(events, ev)
	}
	return events, nil
}

func (d *Detector) checkTeleport(last, candidate domain.LocationFix) (domain.AnomalyEvent, bool) {
	distanceM := geo.Distance(candidate.Lat, candidate.Lng, last.Lat, last.Lng)
	minutes := candidate.CapturedAt.Sub(last.CapturedAt).Minutes()

	details := domain.TeleportDetails{
		DistanceKm:  distanceM / 1000,
		TimeMinutes: minutes,
	}

	if minutes <= 0 {
		if distanceM <= d.cfg.MinTeleportDisplacementM {
			return domain.AnomalyEvent{}, false
		}
		details.NonMonotonic = true
		return domain.AnomalyEvent{Type: domain.AnomalyTeleport, TripID: candidate.TripID, Details: details}, true
	}

	speed := (distanceM / 1000) / (minutes / 60)
	if speed <= d.cfg.TeleportSpeedKmh {
		return domain.AnomalyEvent{}, false
	}
	details.SpeedKmh = &speed
	return domain.AnomalyEvent{Type: domain.AnomalyTeleport, TripID: candidate.TripID, Details: details}, true
}

func (d *Detector) checkDropOff(history []domain.LocationFix, tripID string) (domain.AnomalyEvent, bool) {
	if len(history) < 3 {
		return domain.AnomalyEvent{}, false
	}

	maxMoved := 0.0
	for i := 0; i < len(history)-1; i++ {
		dist := geo.Distance(history[i].Lat, history[i].Lng, history[i+1].Lat, history[i+1].Lng)
		if dist > maxMoved {
			maxMoved = dist
		}
	}
	if maxMoved >= d.cfg.DropOffMaxMovementM {
		return domain.AnomalyEvent{}, false
	}

	return domain.AnomalyEvent{
		Type:   domain.AnomalyDropOff,
		TripID: tripID,
		Details: domain.DropOffDetails{
			MaxMovementM:   maxMoved,
			DurationChecks: len(history),
		},
	}, true
}
