package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/config"
)

const (
	exchangeName = "safety.events"
	queueName    = "safety_alerts"
)

type alertMessage struct {
	AlertID   string          `json:"alert_id"`
	TripID    string          `json:"trip_id"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Details   json.RawMessage `json:"details"`
	Timestamp int64           `json:"timestamp"`
}

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		logger.Fatal("rabbitmq", zap.Error(err))
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("rabbitmq channel", zap.Error(err))
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		logger.Fatal("declare exchange", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		logger.Fatal("declare queue", zap.Error(err))
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		logger.Fatal("bind queue", zap.Error(err))
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatal("consume", zap.Error(err))
	}

	logger.Info("waiting for safety alerts", zap.String("queue", queueName))

	go func() {
		for msg := range msgs {
			handle(logger, msg)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
}

func handle(logger *zap.Logger, msg amqp.Delivery) {
	var alert alertMessage
	if err := json.Unmarshal(msg.Body, &alert); err != nil {
		logger.Warn("malformed alert", zap.Error(err))
		// a malformed body will never parse, so do not requeue it
		_ = msg.Nack(false, false)
		return
	}

	fmt.Printf("[%s] %s trip=%s alert=%s %s\n",
		time.Unix(alert.Timestamp, 0).Format(time.RFC3339),
		alert.Type,
		alert.TripID,
		alert.AlertID,
		string(alert.Details),
	)
	_ = msg.Ack(false)
}
