package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"

	"reponotify/internal"
	"reponotify/pkg/notifier"
	"reponotify/pkg/notify"
	"reponotify/pkg/storage"
	"reponotify/pkg/subscription"
)

const (
	defaultMaxBody     = 5 << 20
	defaultSendTimeout = 10 * time.Second
)

// Handler receives GitHub webhook deliveries and fans them out to every
// tenant subscribed to the event's repository. Each tenant carries its own
// secret, so the shared delivery is verified once per tenant against the raw
// request body.
type Handler struct {
	Store       storage.Store
	Sink        notify.Sink
	Logger      *log.Logger
	MaxBody     int64
	SendTimeout time.Duration
}

// NewHandler builds a Handler with defaults applied.
func NewHandler(store storage.Store, sink notify.Sink, logger *log.Logger) *Handler {
	if logger == nil {
		logger = internal.NewLogger("webhook")
	}
	return &Handler{
		Store:       store,
		Sink:        sink,
		Logger:      logger,
		MaxBody:     defaultMaxBody,
		SendTimeout: defaultSendTimeout,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBody := h.MaxBody
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	eventType := r.Header.Get("X-GitHub-Event")
	signature := r.Header.Get("X-Hub-Signature-256")
	if eventType == "" || signature == "" {
		internal.IncOutcome("malformed")
		http.Error(w, "missing webhook headers", http.StatusBadRequest)
		return
	}
	internal.IncRequest(eventType)
	if deliveryID := r.Header.Get("X-GitHub-Delivery"); deliveryID != "" {
		h.Logger.Printf("delivery=%s event=%s", deliveryID, eventType)
	}

	payload, err := github.ParseWebHook(eventType, body)
	if err != nil {
		internal.IncParseError(eventType)
		internal.IncOutcome("malformed")
		h.Logger.Printf("parse error for %s event: %v", eventType, err)
		http.Error(w, "unparseable payload", http.StatusBadRequest)
		return
	}

	if _, ok := payload.(*github.PingEvent); ok {
		writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
		return
	}

	fullName := repositoryFullName(payload)
	if fullName == "" {
		internal.IncOutcome("malformed")
		http.Error(w, "missing repository", http.StatusBadRequest)
		return
	}

	records, err := h.Store.FindByRepository(r.Context(), fullName)
	if err != nil {
		internal.IncOutcome("store_error")
		h.Logger.Printf("subscription lookup failed for %s: %v", fullName, err)
		http.Error(w, "subscription store unavailable", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		internal.IncOutcome("no_subscribers")
		h.Logger.Printf("no subscribers for %s %s event", fullName, eventType)
		writeJSON(w, http.StatusOK, map[string]string{"status": "no_subscribers"})
		return
	}

	authenticated := 0
	for _, record := range records {
		if !VerifySignature(record.Secret, body, signature) {
			internal.IncAuthFailure(record.TenantID)
			h.Logger.Printf("signature mismatch for tenant %s on %s", record.TenantID, fullName)
			continue
		}
		authenticated++

		if !record.Enabled {
			continue
		}
		h.process(r.Context(), record, payload, eventType, fullName)
	}

	if authenticated == 0 {
		internal.IncOutcome("all_unauthorized")
		http.Error(w, "no subscriber accepted the signature", http.StatusUnauthorized)
		return
	}
	internal.IncOutcome("processed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

// process runs one tenant's pipeline. Failures here are that tenant's alone.
func (h *Handler) process(ctx context.Context, record storage.SubscriptionRecord, payload interface{}, eventType, fullName string) {
	var partial subscription.Partial
	if record.ConfigJSON != "" {
		if err := json.Unmarshal([]byte(record.ConfigJSON), &partial); err != nil {
			h.Logger.Printf("invalid stored config for tenant %s on %s: %v", record.TenantID, fullName, err)
			return
		}
	}
	partial.TenantID = record.TenantID
	partial.Repository = record.Repository
	partial.Secret = record.Secret
	sub := subscription.Normalize(partial)

	n := notifier.Classify(sub, payload)
	if n == nil || n.Destination == "" {
		return
	}

	timeout := h.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := h.Sink.Send(sendCtx, n.Destination, n.Message); err != nil {
		internal.IncSendError(n.Message.Kind)
		h.Logger.Printf("send failed for tenant %s (%s %s): %v", record.TenantID, fullName, eventType, err)
	}
}

// repositoryFullName pulls the canonical "owner/name" out of the payloads the
// engine classifies. Unhandled payload types yield an empty string.
func repositoryFullName(payload interface{}) string {
	switch ev := payload.(type) {
	case *github.PushEvent:
		return ev.GetRepo().GetFullName()
	case *github.PullRequestEvent:
		return ev.GetRepo().GetFullName()
	case *github.IssuesEvent:
		return ev.GetRepo().GetFullName()
	case *github.ReleaseEvent:
		return ev.GetRepo().GetFullName()
	case *github.WatchEvent:
		return ev.GetRepo().GetFullName()
	case *github.ForkEvent:
		return ev.GetRepo().GetFullName()
	case *github.IssueCommentEvent:
		return ev.GetRepo().GetFullName()
	case *github.PullRequestReviewEvent:
		return ev.GetRepo().GetFullName()
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
