package domain

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEndpoint  = errors.New("subscription endpoint must be an absolute http(s) URL")
	ErrEmptyP256dh      = errors.New("subscription p256dh key cannot be empty")
	ErrEmptyAuthSecret  = errors.New("subscription auth secret cannot be empty")
	ErrSubscriptionGone = errors.New("subscription is no longer valid")
)

// Subscription is one web push delivery target of a user.
type Subscription struct {
	id        uuid.UUID
	userID    UserID
	endpoint  string
	p256dh    string
	auth      string
	createdAt time.Time
}

func NewSubscription(userID UserID, endpoint, p256dh, auth string) (*Subscription, error) {
	if userID.IsZero() {
		return nil, ErrInvalidUserID
	}

	u, err := url.Parse(endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return nil, ErrInvalidEndpoint
	}

	if p256dh == "" {
		return nil, ErrEmptyP256dh
	}

	if auth == "" {
		return nil, ErrEmptyAuthSecret
	}

	return &Subscription{
		id:        uuid.Must(uuid.NewV7()),
		userID:    userID,
		endpoint:  endpoint,
		p256dh:    p256dh,
		auth:      auth,
		createdAt: time.Now(),
	}, nil
}

func ReconstituteSubscription(
	id uuid.UUID,
	userID UserID,
	endpoint, p256dh, auth string,
	createdAt time.Time,
) *Subscription {
	return &Subscription{
		id:        id,
		userID:    userID,
		endpoint:  endpoint,
		p256dh:    p256dh,
		auth:      auth,
		createdAt: createdAt,
	}
}

func (s *Subscription) ID() uuid.UUID {
	return s.id
}

func (s *Subscription) UserID() UserID {
	return s.userID
}

func (s *Subscription) Endpoint() string {
	return s.endpoint
}

func (s *Subscription) P256dh() string {
	return s.p256dh
}

func (s *Subscription) Auth() string {
	return s.auth
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

//go:generate mockgen -source=subscription.go -destination=subscription_mock.go -package=domain

type SubscriptionRepository interface {
	// Save stores the subscription and returns the stored row, which keeps
	// its original ID when the endpoint was already registered.
	Save(ctx context.Context, subscription *Subscription) (*Subscription, error)
	FindByUserID(ctx context.Context, userID UserID) ([]*Subscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
