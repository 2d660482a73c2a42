package service

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

var fixedNow = time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)

type mockLocationRepo struct {
	insertFn     func(ctx context.Context, fix *domain.LocationFix) error
	getRecentFn  func(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error)
	getLatestFn  func(ctx context.Context, tripID string) (*domain.LocationFix, error)
	getHistoryFn func(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error)
}

func (m *mockLocationRepo) Insert(ctx context.Context, fix *domain.LocationFix) error {
	return m.insertFn(ctx, fix)
}

func (m *mockLocationRepo) GetRecent(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error) {
	return m.getRecentFn(ctx, tripID, limit)
}

func (m *mockLocationRepo) GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error) {
	return m.getLatestFn(ctx, tripID)
}

func (m *mockLocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error) {
	return m.getHistoryFn(ctx, query)
}

type mockAlertRepo struct {
	insertFn       func(ctx context.Context, alert *domain.Alert) error
	getFn          func(ctx context.Context, id string) (*domain.Alert, error)
	listFn         func(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error)
	updateStatusFn func(ctx context.Context, id string, from, to domain.AlertStatus) error
	inserted       []*domain.Alert
}

func (m *mockAlertRepo) Insert(ctx context.Context, alert *domain.Alert) error {
	m.inserted = append(m.inserted, alert)
	if m.insertFn != nil {
		return m.insertFn(ctx, alert)
	}
	return nil
}

func (m *mockAlertRepo) Get(ctx context.Context, id string) (*domain.Alert, error) {
	return m.getFn(ctx, id)
}

func (m *mockAlertRepo) List(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error) {
	return m.listFn(ctx, query)
}

func (m *mockAlertRepo) UpdateStatus(ctx context.Context, id string, from, to domain.AlertStatus) error {
	return m.updateStatusFn(ctx, id, from, to)
}

type mockAlertPublisher struct {
	publishAlertFn func(ctx context.Context, alert *domain.Alert) error
	calls          []*domain.Alert
}

func (m *mockAlertPublisher) PublishAlert(ctx context.Context, alert *domain.Alert) error {
	m.calls = append(m.calls, alert)
	if m.publishAlertFn != nil {
		return m.publishAlertFn(ctx, alert)
	}
	return nil
}

type raisedAlert struct {
	tripID    string
	alertType domain.AlertType
	details   any
}

type mockAlertRaiser struct {
	raiseFn func(ctx context.Context, tripID string, alertType domain.AlertType, details any) (*domain.Alert, error)
	calls   []raisedAlert
}

func (m *mockAlertRaiser) Raise(ctx context.Context, tripID string, alertType domain.AlertType, details any) (*domain.Alert, error) {
	m.calls = append(m.calls, raisedAlert{tripID: tripID, alertType: alertType, details: details})
	if m.raiseFn != nil {
		return m.raiseFn(ctx, tripID, alertType, details)
	}
	return &domain.Alert{TripID: tripID, Type: alertType, Status: domain.AlertOpen}, nil
}

type mockTripRepo struct {
	insertFn    func(ctx context.Context, trip *domain.Trip) error
	getFn       func(ctx context.Context, id string) (*domain.Trip, error)
	setVCHashFn func(ctx context.Context, id, hash string) error
}

func (m *mockTripRepo) Insert(ctx context.Context, trip *domain.Trip) error {
	return m.insertFn(ctx, trip)
}

func (m *mockTripRepo) Get(ctx context.Context, id string) (*domain.Trip, error) {
	return m.getFn(ctx, id)
}

func (m *mockTripRepo) SetVCHash(ctx context.Context, id, hash string) error {
	return m.setVCHashFn(ctx, id, hash)
}

type mockShareRepo struct {
	insertFn    func(ctx context.Context, token *domain.ShareToken) error
	getTripIDFn func(ctx context.Context, token string) (string, error)
}

func (m *mockShareRepo) Insert(ctx context.Context, token *domain.ShareToken) error {
	return m.insertFn(ctx, token)
}

func (m *mockShareRepo) GetTripID(ctx context.Context, token string) (string, error) {
	return m.getTripIDFn(ctx, token)
}

type mockPlaceRepo struct {
	findWithinFn func(ctx context.Context, bound orb.Bound) ([]domain.Place, error)
}

func (m *mockPlaceRepo) FindWithin(ctx context.Context, bound orb.Bound) ([]domain.Place, error) {
	return m.findWithinFn(ctx, bound)
}

type mockCrowdCache struct {
	getFn func(ctx context.Context, day string) ([]domain.CrowdPrediction, bool, error)
	setFn func(ctx context.Context, day string, preds []domain.CrowdPrediction, ttl time.Duration) error
}

func (m *mockCrowdCache) GetForecast(ctx context.Context, day string) ([]domain.CrowdPrediction, bool, error) {
	return m.getFn(ctx, day)
}

func (m *mockCrowdCache) SetForecast(ctx context.Context, day string, preds []domain.CrowdPrediction, ttl time.Duration) error {
	return m.setFn(ctx, day, preds, ttl)
}

func fixAt(tripID string, lat, lng float64, at time.Time) domain.LocationFix {
	return domain.LocationFix{TripID: tripID, Lat: lat, Lng: lng, CapturedAt: at}
}
