package core

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/detector"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	handler "github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/handler/http"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/handler/subscriber"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/cache/redis"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/database/postgres"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/internal/repository/publisher/rabbitmq"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

type Deps struct {
	DB          *sql.DB
	AMQP        *amqp.Connection
	MQTT        mqtt.Client
	Redis       goredis.Cmdable
	Logger      *zap.Logger
	RiskZones   []domain.RiskZone
	SigningKey  []byte
	DetectorCfg detector.Config
}

type Module struct {
	LocationSvc *service.LocationService
	AlertSvc    *service.AlertService
	AnomalySvc  *service.AnomalyService
	IngestSvc   *service.IngestService

	handlers   []interface{ Register(r *gin.RouterGroup) }
	subscriber *subscriber.LocationSubscriber
}

func Build(deps Deps) (*Module, error) {
	locationRepo := postgres.NewLocationRepo(deps.DB)
	alertRepo := postgres.NewAlertRepo(deps.DB)
	tripRepo := postgres.NewTripRepo(deps.DB)
	shareRepo := postgres.NewShareRepo(deps.DB)
	placeRepo := postgres.NewPlaceRepo(deps.DB)

	alertPub, err := rabbitmq.NewAlertPublisher(deps.AMQP)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}
	crowdCache := redis.NewCrowdCache(deps.Redis)

	locationSvc := service.NewLocationService(locationRepo)
	alertSvc := service.NewAlertService(alertRepo, alertPub, deps.Logger)
	anomalySvc := service.NewAnomalyService(locationSvc, alertSvc, detector.New(deps.DetectorCfg))
	riskZoneSvc := service.NewRiskZoneService(alertSvc, deps.RiskZones)
	ingestSvc := service.NewIngestService(anomalySvc, locationSvc, riskZoneSvc, deps.Logger)
	credentialSvc := service.NewCredentialService(deps.SigningKey)
	tripSvc := service.NewTripService(tripRepo, credentialSvc)
	shareSvc := service.NewShareService(shareRepo, tripSvc, locationSvc)
	placeSvc := service.NewPlaceService(placeRepo)
	crowdSvc := service.NewCrowdService(crowdCache, deps.Logger)

	return &Module{
		LocationSvc: locationSvc,
		AlertSvc:    alertSvc,
		AnomalySvc:  anomalySvc,
		IngestSvc:   ingestSvc,
		handlers: []interface{ Register(r *gin.RouterGroup) }{
			handler.NewTripHandler(tripSvc, shareSvc),
			handler.NewLocationHandler(locationSvc, ingestSvc),
			handler.NewAlertHandler(alertSvc),
			handler.NewFunctionHandler(anomalySvc, credentialSvc, placeSvc, crowdSvc),
		},
		subscriber: subscriber.NewLocationSubscriber(deps.MQTT, ingestSvc, deps.Logger),
	}, nil
}

// RegisterRoutes mounts every handler on r. CORS is applied here so that
// preflight requests to any route are answered.
func (m *Module) RegisterRoutes(r *gin.Engine) {
	r.Use(handler.CORS())
	for _, h := range m.handlers {
		h.Register(&r.RouterGroup)
	}
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
