package deliver

import (
	"context"

	"reponotify/pkg/notify"
)

// Delivery is one notification pulled off a broker, addressed to the
// destination whose topic it arrived on.
type Delivery struct {
	// Destination is the opaque destination id the notification was
	// published under.
	Destination string
	// Tenant identifies the subscription that produced the notification.
	Tenant string
	// Kind is the event kind ("push", "pull_request", ...).
	Kind string
	// Message is the rendered notification.
	Message notify.Message
	// Metadata carries broker metadata from the originating publish.
	Metadata map[string]string
}

// Handler consumes one delivery. Returning an error logs the failure; the
// message is acknowledged either way, there is no redelivery.
type Handler func(ctx context.Context, d *Delivery) error
