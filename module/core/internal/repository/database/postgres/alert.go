package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

const defaultAlertLimit = 50

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, alert *domain.Alert) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, trip_id, type, status, details, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		alert.ID, alert.TripID, string(alert.Type), string(alert.Status), []byte(alert.Details), alert.CreatedAt,
	)
	return err
}

func (r *AlertRepo) Get(ctx context.Context, id string) (*domain.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, trip_id, type, status, details, created_at FROM alerts WHERE id = $1`,
		id,
	)

	alert, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *AlertRepo) List(ctx context.Context, query *domain.AlertQuery) ([]domain.Alert, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAlertLimit
	}

	ds := dialect.From("alerts").
		Select("id", "trip_id", "type", "status", "details", "created_at").
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Prepared(true)
	if query.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(query.Status)))
	}

	stmt, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build alerts query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []domain.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *alert)
	}
	return results, rows.Err()
}

func (r *AlertRepo) UpdateStatus(ctx context.Context, id string, from, to domain.AlertStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStaleStatus
}

func scanAlert(s scanner) (*domain.Alert, error) {
	var (
		alert   domain.Alert
		details []byte
	)
	if err := s.Scan(&alert.ID, &alert.TripID, &alert.Type, &alert.Status, &details, &alert.CreatedAt); err != nil {
		return nil, err
	}
	alert.Details = details
	return &alert, nil
}
