package domain

import "time"

type LocationFix struct {
	ID         int64     `json:"id,omitempty"`
	TripID     string    `json:"trip_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	SpeedKmh   *float64  `json:"speed_kmh"`
	AccuracyM  *float64  `json:"accuracy_m"`
	CapturedAt time.Time `json:"captured_at"`
}

type HistoryQuery struct {
	TripID string
	Start  time.Time
	End    time.Time
}
