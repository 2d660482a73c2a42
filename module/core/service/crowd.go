package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/cache"
)

const (
	crowdJitter   = 20
	crowdMinScore = 20
	crowdMaxScore = 100
	dateLayout    = "Mon Jan 02 2006"
)

type crowdArea struct {
	name       string
	clock      string
	score      float64
	prediction string
	level      domain.RiskLevel
}

// Seed forecast for the Delhi pilot areas.
var crowdAreas = []crowdArea{
	{"India Gate", "6:00 PM", 85, "High congestion expected during evening hours", domain.RiskHigh},
	{"Connaught Place", "8:00 PM", 72, "Moderate crowd expected at shopping areas", domain.RiskMedium},
	{"Lotus Temple", "10:00 AM", 45, "Low crowd expected during morning hours", domain.RiskLow},
	{"Red Fort", "2:00 PM", 68, "Moderate tourist activity expected", domain.RiskMedium},
	{"Chandni Chowk", "7:00 PM", 90, "Very high congestion expected during festival season", domain.RiskHigh},
}

type CrowdService struct {
	cache  cache.CrowdCache
	logger *zap.Logger
	now    func() time.Time
	rnd    func() float64
}

func NewCrowdService(c cache.CrowdCache, logger *zap.Logger) *CrowdService {
	return &CrowdService{
		cache:  c,
		logger: logger,
		now:    time.Now,
		rnd:    rand.Float64,
	}
}

// Forecast returns tomorrow's crowd predictions. The jittered forecast is
// cached until the end of the current day so repeated calls agree.
func (s *CrowdService) Forecast(ctx context.Context) ([]domain.CrowdPrediction, error) {
	now := s.now()
	tomorrow := now.AddDate(0, 0, 1)
	day := tomorrow.Format("2006-01-02")

	if preds, ok, err := s.cache.GetForecast(ctx, day); err != nil {
		s.logger.Warn("crowd cache read failed", zap.String("day", day), zap.Error(err))
	} else if ok {
		return preds, nil
	}

	preds := make([]domain.CrowdPrediction, 0, len(crowdAreas))
	for _, a := range crowdAreas {
		score := a.score + (s.rnd()-0.5)*crowdJitter
		preds = append(preds, domain.CrowdPrediction{
			AreaName:   a.name,
			Time:       tomorrow.Format(dateLayout) + " " + a.clock,
			Score:      math.Max(crowdMinScore, math.Min(crowdMaxScore, score)),
			Prediction: a.prediction,
			RiskLevel:  a.level,
		})
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	if err := s.cache.SetForecast(ctx, day, preds, endOfDay.Sub(now)); err != nil {
		s.logger.Warn("crowd cache write failed", zap.String("day", day), zap.Error(err))
	}
	return preds, nil
}
