package subscription

import "strings"

// Mode selects the inclusion semantics of a FilterSpec.
type Mode string

const (
	// Whitelist passes a candidate only when it matches the list.
	Whitelist Mode = "whitelist"
	// Blacklist passes a candidate only when it does not match the list.
	Blacklist Mode = "blacklist"
)

// FilterSpec is a (mode, list) filter over one dimension of an event.
// Matching is case-insensitive. A nil list is treated as empty.
type FilterSpec struct {
	Mode Mode     `json:"mode" yaml:"mode"`
	List []string `json:"list" yaml:"list"`
}

// Matches reports whether any candidate intersects the filter list.
func (f FilterSpec) Matches(candidates ...string) bool {
	for _, token := range f.List {
		for _, candidate := range candidates {
			if strings.EqualFold(token, candidate) {
				return true
			}
		}
	}
	return false
}

// MatchesText reports whether any list token occurs as a substring of text.
// This is the free-text variant used by the commit message filter; branch,
// author and label filters use set membership via Matches.
func (f FilterSpec) MatchesText(text string) bool {
	lowered := strings.ToLower(text)
	for _, token := range f.List {
		if token == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// Passes applies the mode to the membership result. Under whitelist an empty
// list never passes; under blacklist an empty list always passes.
func (f FilterSpec) Passes(candidates ...string) bool {
	return f.pass(f.Matches(candidates...))
}

// PassesText applies the mode to the substring result.
func (f FilterSpec) PassesText(text string) bool {
	return f.pass(f.MatchesText(text))
}

func (f FilterSpec) pass(matched bool) bool {
	if f.Mode == Whitelist {
		return matched
	}
	return !matched
}

// containsFold reports whether list contains value, ignoring case. Used by
// the inclusion-only branch lists and lifecycle action sets, which have no
// whitelist/blacklist mode.
func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
