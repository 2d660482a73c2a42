package publisher

import (
	"context"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.Alert) error
}
