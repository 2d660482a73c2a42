package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

func TestTripInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	from := time.Unix(1715000000, 0)
	to := time.Unix(1715600000, 0)
	created := time.Unix(1714990000, 0)
	itinerary := json.RawMessage(`{"days":[]}`)

	mock.ExpectExec(`INSERT INTO trips`).
		WithArgs("trip-1", "user-1", []byte(itinerary), nil, 100, from, to, created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewTripRepo(db).Insert(context.Background(), &domain.Trip{
		ID:          "trip-1",
		UserID:      "user-1",
		Itinerary:   itinerary,
		SafetyScore: 100,
		ValidFrom:   from,
		ValidTo:     to,
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTripGet_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715000000, 0)
	rows := sqlmock.NewRows([]string{"id", "user_id", "itinerary", "emergency", "safety_score", "vc_hash", "valid_from", "valid_to", "created_at"}).
		AddRow("trip-1", "user-1", []byte(`{}`), []byte(`{"contacts":[]}`), 85, "abc123", ts, ts.Add(time.Hour), ts)

	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id = (.+)`).
		WithArgs("trip-1").
		WillReturnRows(rows)

	trip, err := NewTripRepo(db).Get(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.SafetyScore != 85 {
		t.Errorf("expected 85, got %d", trip.SafetyScore)
	}
	if trip.VCHash == nil || *trip.VCHash != "abc123" {
		t.Errorf("expected vc hash abc123, got %v", trip.VCHash)
	}
	if string(trip.Emergency) != `{"contacts":[]}` {
		t.Errorf("unexpected emergency %s", trip.Emergency)
	}
}

func TestTripGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM trips`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewTripRepo(db).Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetVCHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE trips SET vc_hash = (.+) WHERE id = (.+)`).
		WithArgs("deadbeef", "trip-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET vc_hash`).
		WithArgs("deadbeef", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTripRepo(db)
	if err := repo.SetVCHash(context.Background(), "trip-1", "deadbeef"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SetVCHash(context.Background(), "missing", "deadbeef"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
