package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

func newTestCrowdService(c *mockCrowdCache, rnd float64) *CrowdService {
	svc := NewCrowdService(c, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	svc.rnd = func() float64 { return rnd }
	return svc
}

func TestForecast_CacheMissComputesAndStores(t *testing.T) {
	var (
		storedDay string
		storedTTL time.Duration
		stored    []domain.CrowdPrediction
	)
	c := &mockCrowdCache{
		getFn: func(_ context.Context, _ string) ([]domain.CrowdPrediction, bool, error) {
			return nil, false, nil
		},
		setFn: func(_ context.Context, day string, preds []domain.CrowdPrediction, ttl time.Duration) error {
			storedDay, stored, storedTTL = day, preds, ttl
			return nil
		},
	}
	svc := newTestCrowdService(c, 0.5)

	preds, err := svc.Forecast(context.Background())
	require.NoError(t, err)
	require.Len(t, preds, 5)

	assert.Equal(t, "India Gate", preds[0].AreaName)
	assert.Equal(t, 85.0, preds[0].Score)
	assert.Equal(t, "Sun Sep 21 2025 6:00 PM", preds[0].Time)
	assert.Equal(t, domain.RiskHigh, preds[0].RiskLevel)

	assert.Equal(t, "2025-09-21", storedDay)
	assert.Equal(t, 14*time.Hour, storedTTL)
	assert.Equal(t, preds, stored)
}

func TestForecast_ScoresClamped(t *testing.T) {
	c := &mockCrowdCache{
		getFn: func(_ context.Context, _ string) ([]domain.CrowdPrediction, bool, error) {
			return nil, false, nil
		},
		setFn: func(_ context.Context, _ string, _ []domain.CrowdPrediction, _ time.Duration) error {
			return nil
		},
	}

	high, err := newTestCrowdService(c, 0.999).Forecast(context.Background())
	require.NoError(t, err)
	low, err := newTestCrowdService(c, 0).Forecast(context.Background())
	require.NoError(t, err)

	for i := range high {
		assert.LessOrEqual(t, high[i].Score, 100.0)
		assert.GreaterOrEqual(t, low[i].Score, 20.0)
	}
	// Chandni Chowk: 90 + ~10 lands on the ceiling
	assert.InDelta(t, 99.98, high[4].Score, 0.01)
	// Lotus Temple: 45 - 10
	assert.Equal(t, 35.0, low[2].Score)
}

func TestForecast_CacheHit(t *testing.T) {
	cached := []domain.CrowdPrediction{{AreaName: "India Gate", Score: 80}}
	c := &mockCrowdCache{
		getFn: func(_ context.Context, day string) ([]domain.CrowdPrediction, bool, error) {
			assert.Equal(t, "2025-09-21", day)
			return cached, true, nil
		},
		setFn: func(_ context.Context, _ string, _ []domain.CrowdPrediction, _ time.Duration) error {
			t.Fatal("cache hit must not rewrite")
			return nil
		},
	}

	preds, err := newTestCrowdService(c, 0.5).Forecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, preds)
}

func TestForecast_CacheFailuresAreNotFatal(t *testing.T) {
	c := &mockCrowdCache{
		getFn: func(_ context.Context, _ string) ([]domain.CrowdPrediction, bool, error) {
			return nil, false, errors.New("connection refused")
		},
		setFn: func(_ context.Context, _ string, _ []domain.CrowdPrediction, _ time.Duration) error {
			return errors.New("connection refused")
		},
	}

	preds, err := newTestCrowdService(c, 0.5).Forecast(context.Background())
	require.NoError(t, err)
	assert.Len(t, preds, 5)
}
