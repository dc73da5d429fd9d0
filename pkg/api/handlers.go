package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"reponotify/pkg/storage"
	"reponotify/pkg/subscription"
)

// SubscriptionsHandler manages tenant subscriptions over one path.
// GET lists a tenant's subscriptions, or fetches one when repository is
// given. PUT and POST upsert. DELETE removes.
type SubscriptionsHandler struct {
	Store  storage.Store
	Logger *log.Logger
}

func (h *SubscriptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "storage not configured", http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut, http.MethodPost:
		h.upsert(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// subscriptionView is the API shape of one stored subscription. The secret
// never leaves the store through this surface.
type subscriptionView struct {
	TenantID   string               `json:"tenantId"`
	Repository string               `json:"repository"`
	Enabled    bool                 `json:"enabled"`
	Config     subscription.Partial `json:"config"`
}

func (h *SubscriptionsHandler) get(w http.ResponseWriter, r *http.Request) {
	tenantID := strings.TrimSpace(r.URL.Query().Get("tenant_id"))
	if tenantID == "" {
		http.Error(w, "missing tenant_id", http.StatusBadRequest)
		return
	}
	repository := strings.TrimSpace(r.URL.Query().Get("repository"))

	if repository != "" {
		record, err := h.Store.GetSubscription(r.Context(), tenantID, repository)
		if err != nil {
			h.fail(w, "get subscription failed", err)
			return
		}
		if record == nil {
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toView(*record))
		return
	}

	records, err := h.Store.ListByTenant(r.Context(), tenantID)
	if err != nil {
		h.fail(w, "list subscriptions failed", err)
		return
	}
	views := make([]subscriptionView, 0, len(records))
	for _, record := range records {
		views = append(views, toView(record))
	}
	writeJSON(w, http.StatusOK, views)
}

// upsertRequest carries identity plus the partial per-event configuration.
// The config is stored as given; normalization happens on the read path so
// default changes apply to existing rows.
type upsertRequest struct {
	TenantID   string           `json:"tenantId"`
	Repository string           `json:"repository"`
	Secret     string           `json:"secret"`
	Enabled    *bool            `json:"enabled"`
	Config     *json.RawMessage `json:"config"`
}

func (h *SubscriptionsHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.TenantID = strings.TrimSpace(req.TenantID)
	req.Repository = strings.TrimSpace(req.Repository)
	if req.TenantID == "" {
		http.Error(w, "missing tenantId", http.StatusBadRequest)
		return
	}
	if !validRepository(req.Repository) {
		http.Error(w, "repository must be owner/name", http.StatusBadRequest)
		return
	}
	if req.Secret == "" {
		http.Error(w, "missing secret", http.StatusBadRequest)
		return
	}

	configJSON := ""
	if req.Config != nil {
		var partial subscription.Partial
		if err := json.Unmarshal(*req.Config, &partial); err != nil {
			http.Error(w, "invalid config", http.StatusBadRequest)
			return
		}
		configJSON = string(*req.Config)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	record := storage.SubscriptionRecord{
		TenantID:   req.TenantID,
		Repository: req.Repository,
		Secret:     req.Secret,
		Enabled:    enabled,
		ConfigJSON: configJSON,
	}
	if err := h.Store.UpsertSubscription(r.Context(), record); err != nil {
		h.fail(w, "upsert subscription failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toView(record))
}

func (h *SubscriptionsHandler) delete(w http.ResponseWriter, r *http.Request) {
	tenantID := strings.TrimSpace(r.URL.Query().Get("tenant_id"))
	repository := strings.TrimSpace(r.URL.Query().Get("repository"))
	if tenantID == "" || repository == "" {
		http.Error(w, "missing tenant_id or repository", http.StatusBadRequest)
		return
	}
	if err := h.Store.DeleteSubscription(r.Context(), tenantID, repository); err != nil {
		h.fail(w, "delete subscription failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *SubscriptionsHandler) fail(w http.ResponseWriter, msg string, err error) {
	http.Error(w, msg, http.StatusInternalServerError)
	if h.Logger != nil {
		h.Logger.Printf("%s: %v", msg, err)
	}
}

func toView(record storage.SubscriptionRecord) subscriptionView {
	var partial subscription.Partial
	if record.ConfigJSON != "" {
		_ = json.Unmarshal([]byte(record.ConfigJSON), &partial)
	}
	return subscriptionView{
		TenantID:   record.TenantID,
		Repository: record.Repository,
		Enabled:    record.Enabled,
		Config:     partial,
	}
}

// validRepository reports whether value is in canonical "owner/name" form.
func validRepository(value string) bool {
	owner, name, ok := strings.Cut(value, "/")
	if !ok {
		return false
	}
	return owner != "" && name != "" && !strings.Contains(name, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
