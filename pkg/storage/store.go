package storage

import (
	"context"
	"time"
)

// SubscriptionRecord is one tenant's stored subscription to one repository.
// ConfigJSON holds the tenant's partial event configuration exactly as the
// configuration surface saved it; the dispatcher normalizes it on read.
type SubscriptionRecord struct {
	TenantID   string
	Repository string
	Secret     string
	Enabled    bool
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store defines persistence for tenant subscriptions. FindByRepository is
// queried fresh on every inbound event; the engine assumes no staleness
// tolerance and never caches records between requests.
type Store interface {
	UpsertSubscription(ctx context.Context, record SubscriptionRecord) error
	GetSubscription(ctx context.Context, tenantID, repository string) (*SubscriptionRecord, error)
	ListByTenant(ctx context.Context, tenantID string) ([]SubscriptionRecord, error)
	// FindByRepository returns every subscription whose repository equals
	// fullName exactly (canonical "owner/name" form). An empty result is the
	// normal case for unmonitored repositories, not an error.
	FindByRepository(ctx context.Context, fullName string) ([]SubscriptionRecord, error)
	DeleteSubscription(ctx context.Context, tenantID, repository string) error
	Close() error
}
