package deliver

import "github.com/ThreeDotsLabs/watermill/message"

// Option is a function that configures a Worker.
type Option func(*Worker)

// WithSubscriber sets the broker subscriber for the worker.
func WithSubscriber(sub message.Subscriber) Option {
	return func(w *Worker) {
		w.subscriber = sub
	}
}

// WithDestinations adds destination topics without dedicated handlers; they
// are served by the fallback handler.
func WithDestinations(destinations ...string) Option {
	return func(w *Worker) {
		for _, destination := range destinations {
			if destination == "" {
				continue
			}
			w.destinations = append(w.destinations, destination)
		}
	}
}

// WithConcurrency sets the number of concurrent delivery processors.
func WithConcurrency(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithCodec sets the codec for decoding broker messages.
func WithCodec(c Codec) Option {
	return func(w *Worker) {
		if c != nil {
			w.codec = c
		}
	}
}

// WithLogger sets the logger for the worker.
func WithLogger(l Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}
