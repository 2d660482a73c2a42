package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

var _ database.TripRepository = (*TripRepo)(nil)

type TripRepo struct {
	db *sql.DB
}

func NewTripRepo(db *sql.DB) *TripRepo {
	return &TripRepo{db: db}
}

func (r *TripRepo) Insert(ctx context.Context, trip *domain.Trip) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (id, user_id, itinerary, emergency, safety_score, valid_from, valid_to, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		trip.ID, trip.UserID, jsonOrNull(trip.Itinerary), jsonOrNull(trip.Emergency), trip.SafetyScore, trip.ValidFrom, trip.ValidTo, trip.CreatedAt,
	)
	return err
}

func (r *TripRepo) Get(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, itinerary, emergency, safety_score, vc_hash, valid_from, valid_to, created_at FROM trips WHERE id = $1`,
		id,
	)

	var (
		trip      domain.Trip
		itinerary []byte
		emergency []byte
		vcHash    sql.NullString
	)
	err := row.Scan(&trip.ID, &trip.UserID, &itinerary, &emergency, &trip.SafetyScore, &vcHash, &trip.ValidFrom, &trip.ValidTo, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	trip.Itinerary = itinerary
	trip.Emergency = emergency
	if vcHash.Valid {
		trip.VCHash = &vcHash.String
	}
	return &trip, nil
}

func (r *TripRepo) SetVCHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE trips SET vc_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func jsonOrNull(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
