package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

const (
	TopicPattern  = "/saarthi/trip/+/location"
	ingestTimeout = 10 * time.Second
)

type ingestService interface {
	Ingest(ctx context.Context, fix *domain.LocationFix) (*service.AnomalyResult, error)
}

type locationMessage struct {
	TripID    string   `json:"trip_id"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	SpeedKmh  *float64 `json:"speed_kmh,omitempty"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type LocationSubscriber struct {
	client    mqtt.Client
	ingestSvc ingestService
	logger    *zap.Logger
}

func NewLocationSubscriber(client mqtt.Client, ingestSvc ingestService, logger *zap.Logger) *LocationSubscriber {
	return &LocationSubscriber{
		client:    client,
		ingestSvc: ingestSvc,
		logger:    logger,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid location message", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	topicTrip := tripFromTopic(msg.Topic())
	if raw.TripID == "" {
		raw.TripID = topicTrip
	}

	if err := validateLocationMessage(&raw, topicTrip); err != nil {
		s.logger.Warn("location message rejected", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	fix := &domain.LocationFix{
		TripID:     raw.TripID,
		Lat:        raw.Lat,
		Lng:        raw.Lng,
		SpeedKmh:   raw.SpeedKmh,
		AccuracyM:  raw.AccuracyM,
		CapturedAt: time.Unix(raw.Timestamp, 0),
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	result, err := s.ingestSvc.Ingest(ctx, fix)
	if err != nil {
		s.logger.Error("ingest location failed", zap.String("trip_id", fix.TripID), zap.Error(err))
		return
	}
	if result != nil && len(result.Anomalies) > 0 {
		s.logger.Info("anomalies detected",
			zap.String("trip_id", fix.TripID),
			zap.Int("count", len(result.Anomalies)),
		)
	}
}

// tripFromTopic returns the wildcard segment of /saarthi/trip/<id>/location.
func tripFromTopic(topic string) string {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) != 4 || parts[0] != "saarthi" || parts[1] != "trip" || parts[3] != "location" {
		return ""
	}
	return parts[2]
}

func validateLocationMessage(msg *locationMessage, topicTrip string) error {
	if msg.TripID == "" {
		return fmt.Errorf("trip_id: required")
	}
	if topicTrip != "" && msg.TripID != topicTrip {
		return fmt.Errorf("trip_id: %q does not match topic trip %q", msg.TripID, topicTrip)
	}
	if err := geo.ValidateCoordinates(msg.Lat, msg.Lng); err != nil {
		return err
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
