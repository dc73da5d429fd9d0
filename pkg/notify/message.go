package notify

import "time"

// Author identifies the upstream actor a notification is attributed to.
type Author struct {
	Name    string `json:"name"`
	IconURL string `json:"iconUrl,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Field is a short labeled value rendered alongside the body.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Message is the destination-agnostic notification document produced by the
// classifiers. Destinations decide how to render it; the engine only decides
// what it says.
type Message struct {
	Tenant    string    `json:"tenant"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Color     string    `json:"color,omitempty"`
	Author    Author    `json:"author"`
	Body      string    `json:"body,omitempty"`
	Fields    []Field   `json:"fields,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
