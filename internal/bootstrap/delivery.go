package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/gateway"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

func NewGateway(cfg *config.Config, backends *Backends, publisher pubsub.Publisher) (domain.NotificationGateway, error) {
	switch cfg.Gateway.Kind {
	case config.GatewayWebPush:
		if backends.Subscriptions == nil {
			return nil, errors.New("web push gateway requires a subscription store")
		}

		return gateway.NewWebPushGateway(backends.Subscriptions, gateway.WebPushConfig{
			VAPIDPublicKey:  cfg.Gateway.VAPID.PublicKey,
			VAPIDPrivateKey: cfg.Gateway.VAPID.PrivateKey,
			Subscriber:      cfg.Gateway.VAPID.Subscriber,
		}), nil
	case config.GatewayPubSub:
		if publisher == nil {
			return nil, errors.New("pubsub gateway requires an event publisher")
		}

		return gateway.NewPubSubGateway(publisher), nil
	default:
		return nil, fmt.Errorf("unknown gateway kind %q", cfg.Gateway.Kind)
	}
}

// NewScanner builds the delivery pipeline for the configured window. A nil
// recorder disables scan metrics.
func NewScanner(
	cfg *config.Config,
	backends *Backends,
	notifier domain.NotificationGateway,
	recorder app.ScanRecorder,
) app.ReminderScanner {
	coordinator := app.NewDeliveryCoordinator(backends.Reminders, notifier, cfg.Scanner.DeliveryTimeout)

	opts := []app.ScannerOption{}
	if recorder != nil {
		opts = append(opts, app.WithScanRecorder(recorder))
	}

	return app.NewReminderScanner(backends.Reminders, coordinator, app.ScannerConfig{
		GraceBefore:    cfg.Scanner.GraceBefore,
		Lookahead:      cfg.Scanner.Lookahead,
		MaxConcurrency: cfg.Scanner.MaxConcurrency,
	}, opts...)
}

func slogLevel(cfg *config.Config) slog.Level {
	return logging.ParseLevel(cfg.Log.Level)
}
