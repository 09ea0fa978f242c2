package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	webpush "github.com/SherClockHolmes/webpush-go"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

const defaultTTL = 60 * 60

type WebPushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
	TTL             int
	HTTPClient      webpush.HTTPClient
}

type webPushGateway struct {
	subscriptions domain.SubscriptionRepository
	cfg           WebPushConfig
}

type pushPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueAt       int64  `json:"dueAt"`
}

func NewWebPushGateway(subscriptions domain.SubscriptionRepository, cfg WebPushConfig) domain.NotificationGateway {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	return &webPushGateway{
		subscriptions: subscriptions,
		cfg:           cfg,
	}
}

// Notify pushes to every subscription of the user concurrently. It succeeds
// when at least one push service accepted the message. Subscriptions the push
// service reports as gone are deleted.
func (g *webPushGateway) Notify(ctx context.Context, userID domain.UserID, notification domain.Notification) error {
	subs, err := g.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	if len(subs) == 0 {
		return domain.ErrNoDeliveryTarget
	}

	payload, err := json.Marshal(pushPayload{
		ID:          notification.CorrelationID,
		Title:       notification.Title,
		Description: notification.Description,
		DueAt:       domain.ScoreOf(notification.DueAt),
	})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	var (
		accepted atomic.Int32
		group    errgroup.Group
	)

	errs := make([]error, len(subs))

	for i, sub := range subs {
		group.Go(func() error {
			if err := g.send(ctx, payload, sub); err != nil {
				errs[i] = err

				return nil
			}

			accepted.Add(1)

			return nil
		})
	}

	_ = group.Wait()

	if accepted.Load() == 0 {
		return fmt.Errorf("no push target accepted the notification: %w", errors.Join(errs...))
	}

	slog.DebugContext(ctx, "web push sent",
		"user_id", userID.String(),
		"correlation_id", notification.CorrelationID,
		"targets", len(subs),
		"accepted", accepted.Load(),
	)

	return nil
}

func (g *webPushGateway) send(ctx context.Context, payload []byte, sub *domain.Subscription) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint(),
		Keys: webpush.Keys{
			P256dh: sub.P256dh(),
			Auth:   sub.Auth(),
		},
	}, &webpush.Options{
		HTTPClient:      g.cfg.HTTPClient,
		Subscriber:      g.cfg.Subscriber,
		VAPIDPublicKey:  g.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: g.cfg.VAPIDPrivateKey,
		TTL:             g.cfg.TTL,
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return fmt.Errorf("push to %s failed: %w", sub.Endpoint(), err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		g.prune(ctx, sub)

		return fmt.Errorf("%w: %s", domain.ErrSubscriptionGone, sub.Endpoint())
	default:
		return fmt.Errorf("push service responded %d for %s", resp.StatusCode, sub.Endpoint())
	}
}

func (g *webPushGateway) prune(ctx context.Context, sub *domain.Subscription) {
	if err := g.subscriptions.DeleteByEndpoint(ctx, sub.Endpoint()); err != nil {
		slog.WarnContext(ctx, "failed to prune expired subscription",
			"user_id", sub.UserID().String(),
			"subscription_id", sub.ID().String(),
			"error", err,
		)

		return
	}

	slog.InfoContext(ctx, "expired subscription pruned",
		"event", "subscription.pruned",
		"user_id", sub.UserID().String(),
		"subscription_id", sub.ID().String(),
	)
}
