package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/config"
)

type locationMessage struct {
	TripID    string   `json:"trip_id"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	SpeedKmh  *float64 `json:"speed_kmh,omitempty"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type walker struct {
	tripID string
	lat    float64
	lng    float64
}

// step moves the tourist on foot. Now and then it jumps far away or stays
// put so the server sees both anomaly kinds.
func (w *walker) step(r *rand.Rand) {
	switch p := r.Float64(); {
	case p < 0.05:
		w.lat += 0.5
		w.lng += 0.5
	case p < 0.25:
		w.lat += (r.Float64() - 0.5) * 0.00005
		w.lng += (r.Float64() - 0.5) * 0.00005
	default:
		w.lat += (r.Float64() - 0.5) * 0.002
		w.lng += (r.Float64() - 0.5) * 0.002
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds> [trip_id...]\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	cfg := config.Load()
	cfg.MQTTClientID = "saarthi-mock-publisher"

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := config.NewMQTT(cfg, logger)
	if err != nil {
		logger.Fatal("mqtt", zap.Error(err))
	}
	defer client.Disconnect(250)

	tripIDs := os.Args[2:]
	if len(tripIDs) == 0 {
		for i := 0; i < 3; i++ {
			tripIDs = append(tripIDs, uuid.NewString())
		}
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	walkers := make([]*walker, len(tripIDs))
	for i, id := range tripIDs {
		// start around the pilot area in Greater Noida
		walkers[i] = &walker{
			tripID: id,
			lat:    28.4506 + (r.Float64()-0.5)*0.01,
			lng:    77.5847 + (r.Float64()-0.5)*0.01,
		}
	}

	logger.Info("publishing",
		zap.String("broker", cfg.MQTTBroker),
		zap.Int("interval_seconds", intervalSec),
		zap.Strings("trips", tripIDs),
	)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		w := walkers[r.Intn(len(walkers))]
		w.step(r)

		accuracy := 5 + r.Float64()*20
		msg := locationMessage{
			TripID:    w.tripID,
			Lat:       w.lat,
			Lng:       w.lng,
			AccuracyM: &accuracy,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/saarthi/trip/%s/location", w.tripID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Warn("publish failed", zap.String("topic", topic), zap.Error(err))
			continue
		}

		logger.Debug("published", zap.String("topic", topic), zap.ByteString("payload", payload))
	}
}
