package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `trip_id, lat, lng, speed_kmh, accuracy_m, captured_at`

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, fix *domain.LocationFix) error {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO locations (trip_id, lat, lng, speed_kmh, accuracy_m, captured_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		fix.TripID, fix.Lat, fix.Lng, nullFloat(fix.SpeedKmh), nullFloat(fix.AccuracyM), fix.CapturedAt,
	)
	return row.Scan(&fix.ID)
}

func (r *LocationRepo) GetRecent(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, `+locationColumns+` FROM locations WHERE trip_id = $1 ORDER BY captured_at DESC LIMIT $2`,
		tripID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanLocations(rows)
}

func (r *LocationRepo) GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, `+locationColumns+` FROM locations WHERE trip_id = $1 ORDER BY captured_at DESC LIMIT 1`,
		tripID,
	)

	fix, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fix, nil
}

func (r *LocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, `+locationColumns+` FROM locations WHERE trip_id = $1 AND captured_at >= $2 AND captured_at <= $3 ORDER BY captured_at ASC`,
		query.TripID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	return scanLocations(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(s scanner) (*domain.LocationFix, error) {
	var (
		fix      domain.LocationFix
		speed    sql.NullFloat64
		accuracy sql.NullFloat64
	)
	if err := s.Scan(&fix.ID, &fix.TripID, &fix.Lat, &fix.Lng, &speed, &accuracy, &fix.CapturedAt); err != nil {
		return nil, err
	}
	if speed.Valid {
		fix.SpeedKmh = &speed.Float64
	}
	if accuracy.Valid {
		fix.AccuracyM = &accuracy.Float64
	}
	return &fix, nil
}

func scanLocations(rows *sql.Rows) ([]domain.LocationFix, error) {
	defer func() { _ = rows.Close() }()

	results := []domain.LocationFix{}
	for rows.Next() {
		fix, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *fix)
	}
	return results, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
