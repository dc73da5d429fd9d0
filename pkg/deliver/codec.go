package deliver

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"reponotify/pkg/notify"
)

// Codec decodes broker messages into deliveries.
type Codec interface {
	Decode(destination string, msg *message.Message) (*Delivery, error)
}

// JSONCodec decodes the JSON notification payload the sink publishes.
type JSONCodec struct{}

// Decode unmarshals a broker message into a Delivery. Tenant and kind come
// from the payload, falling back to publish metadata when absent.
func (JSONCodec) Decode(destination string, msg *message.Message) (*Delivery, error) {
	var body notify.Message
	if err := json.Unmarshal(msg.Payload, &body); err != nil {
		return nil, err
	}

	metadata := make(map[string]string, len(msg.Metadata))
	for key, value := range msg.Metadata {
		metadata[key] = value
	}

	tenant := body.Tenant
	if tenant == "" {
		tenant = msg.Metadata.Get("tenant")
	}
	kind := body.Kind
	if kind == "" {
		kind = msg.Metadata.Get("kind")
	}

	return &Delivery{
		Destination: destination,
		Tenant:      tenant,
		Kind:        kind,
		Message:     body,
		Metadata:    metadata,
	}, nil
}
