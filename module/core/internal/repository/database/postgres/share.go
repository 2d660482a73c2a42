package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

var _ database.ShareRepository = (*ShareRepo)(nil)

type ShareRepo struct {
	db *sql.DB
}

func NewShareRepo(db *sql.DB) *ShareRepo {
	return &ShareRepo{db: db}
}

func (r *ShareRepo) Insert(ctx context.Context, token *domain.ShareToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO share_tokens (token, trip_id, created_at) VALUES ($1, $2, $3)`,
		token.Token, token.TripID, token.CreatedAt,
	)
	return err
}

func (r *ShareRepo) GetTripID(ctx context.Context, token string) (string, error) {
	var tripID string
	err := r.db.QueryRowContext(ctx, `SELECT trip_id FROM share_tokens WHERE token = $1`, token).Scan(&tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return tripID, err
}
