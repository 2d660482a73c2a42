package cache

import (
	"context"
	"time"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

// CrowdCache stores a day's crowd forecast. A miss is reported as ok=false
// with a nil error.
type CrowdCache interface {
	GetForecast(ctx context.Context, day string) (preds []domain.CrowdPrediction, ok bool, err error)
	SetForecast(ctx context.Context, day string, preds []domain.CrowdPrediction, ttl time.Duration) error
}
