package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/cache"
)

var _ cache.CrowdCache = (*CrowdCache)(nil)

const crowdKeyPrefix = "crowd:"

type CrowdCache struct {
	client goredis.Cmdable
}

func NewCrowdCache(client goredis.Cmdable) *CrowdCache {
	return &CrowdCache{client: client}
}

func (c *CrowdCache) GetForecast(ctx context.Context, day string) ([]domain.CrowdPrediction, bool, error) {
	value, err := c.client.Get(ctx, crowdKeyPrefix+day).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var preds []domain.CrowdPrediction
	if err := json.Unmarshal([]byte(value), &preds); err != nil {
		return nil, false, fmt.Errorf("unmarshal forecast: %w", err)
	}
	return preds, true, nil
}

func (c *CrowdCache) SetForecast(ctx context.Context, day string, preds []domain.CrowdPrediction, ttl time.Duration) error {
	body, err := json.Marshal(preds)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	return c.client.Set(ctx, crowdKeyPrefix+day, body, ttl).Err()
}
