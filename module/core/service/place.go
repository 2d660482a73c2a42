package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/pkg/geo"
)

const (
	DefaultSearchRadiusKm = 5
	MaxSearchRadiusKm     = 50
)

type PlaceService struct {
	repo database.PlaceRepository
}

func NewPlaceService(repo database.PlaceRepository) *PlaceService {
	return &PlaceService{repo: repo}
}

// Nearby returns places within the radius ordered by distance, nearest first.
func (s *PlaceService) Nearby(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error) {
	if err := geo.ValidateCoordinates(q.Lat, q.Lng); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if q.RadiusKm == 0 {
		q.RadiusKm = DefaultSearchRadiusKm
	}
	if q.RadiusKm < 0 || q.RadiusKm > MaxSearchRadiusKm {
		return nil, fmt.Errorf("%w: radius_km must be between 0 and %d", ErrInvalidInput, MaxSearchRadiusKm)
	}

	candidates, err := s.repo.FindWithin(ctx, geo.BoundAround(q.Lat, q.Lng, q.RadiusKm*1000))
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}

	results := make([]domain.Place, 0, len(candidates))
	for _, p := range candidates {
		p.Distance = geo.Distance(q.Lat, q.Lng, p.Lat, p.Lng) / 1000
		if p.Distance <= q.RadiusKm {
			results = append(results, p)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results, nil
}
