package domain

import (
	"encoding/json"
	"time"
)

type AlertType string

const (
	AlertPanic    AlertType = "PANIC"
	AlertGeofence AlertType = "GEOFENCE"
	AlertAnomaly  AlertType = "ANOMALY"
)

type AlertStatus string

const (
	AlertOpen     AlertStatus = "OPEN"
	AlertAck      AlertStatus = "ACK"
	AlertResolved AlertStatus = "RESOLVED"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertOpen, AlertAck, AlertResolved:
		return true
	}
	return false
}

// CanTransition reports whether an alert may move from s to next.
// Alerts only move forward: OPEN -> ACK -> RESOLVED, or OPEN -> RESOLVED.
func (s AlertStatus) CanTransition(next AlertStatus) bool {
	switch s {
	case AlertOpen:
		return next == AlertAck || next == AlertResolved
	case AlertAck:
		return next == AlertResolved
	}
	return false
}

type Alert struct {
	ID        string          `json:"id"`
	TripID    string          `json:"trip_id"`
	Type      AlertType       `json:"type"`
	Status    AlertStatus     `json:"status"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

type AlertQuery struct {
	Status AlertStatus
	Limit  int
}

type SOSTrigger string

const (
	TriggerPanicButton SOSTrigger = "PANIC_BUTTON"
	TriggerSilent      SOSTrigger = "SILENT_SOS"
	TriggerWhistleClap SOSTrigger = "WHISTLE_CLAP_SOS"
	TriggerVoice       SOSTrigger = "VOICE_SOS"
)

func (t SOSTrigger) Valid() bool {
	switch t {
	case TriggerPanicButton, TriggerSilent, TriggerWhistleClap, TriggerVoice:
		return true
	}
	return false
}
