package domain

import (
	"encoding/json"
	"time"
)

const DefaultSafetyScore = 100

type Trip struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Itinerary   json.RawMessage `json:"itinerary"`
	Emergency   json.RawMessage `json:"emergency"`
	SafetyScore int             `json:"safety_score"`
	VCHash      *string         `json:"vc_hash"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidTo     time.Time       `json:"valid_to"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ShareToken struct {
	Token     string    `json:"token"`
	TripID    string    `json:"trip_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedView is what a share link exposes to family members.
type SharedView struct {
	TripID      string          `json:"trip_id"`
	SafetyScore int             `json:"safety_score"`
	Emergency   json.RawMessage `json:"emergency"`
	Location    *LocationFix    `json:"location"`
	LastUpdate  *time.Time      `json:"last_update"`
}
