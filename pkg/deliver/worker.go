package deliver

import (
	"context"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Worker subscribes to destination topics, decodes notifications, and hands
// them to per-destination handlers. Messages are always acknowledged; a
// failed handler is logged, not redelivered.
type Worker struct {
	subscriber  message.Subscriber
	codec       Codec
	logger      Logger
	concurrency int

	destinations []string
	handlers     map[string]Handler
	fallback     Handler
}

// New creates a Worker with the given options.
func New(opts ...Option) *Worker {
	w := &Worker{
		codec:       JSONCodec{},
		logger:      stdLogger{},
		concurrency: 1,
		handlers:    make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewFromConfig builds a subscriber from cfg and wraps it in a Worker.
func NewFromConfig(cfg SubscriberConfig, opts ...Option) (*Worker, error) {
	sub, err := BuildSubscriber(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithSubscriber(sub))
	return New(opts...), nil
}

// HandleDestination registers a handler for one destination topic.
func (w *Worker) HandleDestination(destination string, h Handler) {
	if h == nil || destination == "" {
		return
	}
	w.handlers[destination] = h
	w.destinations = append(w.destinations, destination)
}

// Handle registers a fallback handler for every subscribed destination that
// has no dedicated handler.
func (w *Worker) Handle(h Handler) {
	w.fallback = h
}

// Run subscribes to every registered destination and processes messages
// until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if w.subscriber == nil {
		return errors.New("subscriber is required")
	}
	destinations := unique(w.destinations)
	if len(destinations) == 0 {
		return errors.New("at least one destination is required")
	}

	sem := make(chan struct{}, w.concurrency)

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, destination := range destinations {
		msgs, err := w.subscriber.Subscribe(ctx, destination)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func(destination string, ch <-chan *message.Message) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-ch:
					if !ok {
						return
					}
					sem <- struct{}{}
					wg.Add(1)
					go func(msg *message.Message) {
						defer wg.Done()
						defer func() { <-sem }()
						w.handleMessage(ctx, destination, msg)
					}(msg)
				}
			}
		}(destination, msgs)
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

// Close shuts down the worker's subscriber.
func (w *Worker) Close() error {
	if w.subscriber == nil {
		return nil
	}
	return w.subscriber.Close()
}

func (w *Worker) handleMessage(ctx context.Context, destination string, msg *message.Message) {
	defer msg.Ack()

	d, err := w.codec.Decode(destination, msg)
	if err != nil {
		w.logger.Printf("decode failed on %s: %v", destination, err)
		return
	}

	handler := w.handlers[destination]
	if handler == nil {
		handler = w.fallback
	}
	if handler == nil {
		w.logger.Printf("no handler for destination=%s kind=%s", destination, d.Kind)
		return
	}

	if err := handler(ctx, d); err != nil {
		w.logger.Printf("delivery failed destination=%s tenant=%s kind=%s: %v", destination, d.Tenant, d.Kind, err)
	}
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
