package domain

type AnomalyType string

const (
	AnomalyTeleport AnomalyType = "TELEPORT"
	AnomalyDropOff  AnomalyType = "DROP_OFF"
)

// AnomalyEvent is produced by the detector and never mutated afterwards.
// Details is either TeleportDetails or DropOffDetails.
type AnomalyEvent struct {
	Type    AnomalyType `json:"type"`
	TripID  string      `json:"trip_id"`
	Details any         `json:"details"`
}

// SpeedKmh is nil when the candidate is not newer than the last fix and the
// speed is undefined.
type TeleportDetails struct {
	DistanceKm   float64  `json:"distance_km"`
	TimeMinutes  float64  `json:"time_minutes"`
	SpeedKmh     *float64 `json:"speed_kmh"`
	NonMonotonic bool     `json:"non_monotonic,omitempty"`
}

type DropOffDetails struct {
	MaxMovementM   float64 `json:"max_movement_m"`
	DurationChecks int     `json:"duration_checks"`
}
