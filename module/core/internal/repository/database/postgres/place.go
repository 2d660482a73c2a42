package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/paulmach/orb"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

var _ database.PlaceRepository = (*PlaceRepo)(nil)

type PlaceRepo struct {
	db *sql.DB
}

func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

// FindWithin returns every place whose coordinates fall inside bound.
func (r *PlaceRepo) FindWithin(ctx context.Context, bound orb.Bound) ([]domain.Place, error) {
	stmt, args, err := dialect.From("places").
		Select("id", "name", "kind", "rating", "lat", "lng").
		Where(
			goqu.C("lat").Between(goqu.Range(bound.Min.Lat(), bound.Max.Lat())),
			goqu.C("lng").Between(goqu.Range(bound.Min.Lon(), bound.Max.Lon())),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build places query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []domain.Place{}
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.Rating, &p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
