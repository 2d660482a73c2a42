package service

import (
	"context"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database"
)

type LocationService struct {
	repo database.LocationRepository
}

func NewLocationService(repo database.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) SaveLocation(ctx context.Context, fix *domain.LocationFix) error {
	return s.repo.Insert(ctx, fix)
}

func (s *LocationService) GetLatest(ctx context.Context, tripID string) (*domain.LocationFix, error) {
	return s.repo.GetLatest(ctx, tripID)
}

func (s *LocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationFix, error) {
	return s.repo.GetHistory(ctx, query)
}

func (s *LocationService) GetRecent(ctx context.Context, tripID string, limit int) ([]domain.LocationFix, error) {
	return s.repo.GetRecent(ctx, tripID, limit)
}
