package subscription

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestNormalizeEmptyPartialYieldsDefaults tests that a bare stored record becomes the canonical defaults.
func TestNormalizeEmptyPartialYieldsDefaults(t *testing.T) {
	got := Normalize(Partial{TenantID: "guild-1", Repository: "acme/widgets", Secret: "s3cret"})

	if !got.Enabled {
		t.Fatalf("subscription should be enabled by default")
	}
	if got.Commits.Enabled || got.PullRequests.Enabled || got.Issues.Enabled || got.Releases.Enabled {
		t.Fatalf("notification kinds must default to disabled")
	}
	if got.Stars.Enabled || got.Forks.Enabled || got.IssueComments.Enabled || got.Reviews.Enabled {
		t.Fatalf("activity kinds must default to disabled")
	}
	if got.Commits.BranchFilter.Mode != Blacklist || len(got.Commits.BranchFilter.List) != 0 {
		t.Fatalf("branch filter default should be an empty blacklist, got %+v", got.Commits.BranchFilter)
	}
	if !got.PullRequests.IgnoreDrafts {
		t.Fatalf("ignoreDrafts should default to true")
	}
	if !reflect.DeepEqual(got.PullRequests.EventFilter, []string{"opened", "closed", "reopened"}) {
		t.Fatalf("unexpected pull request event filter: %v", got.PullRequests.EventFilter)
	}
	if !reflect.DeepEqual(got.Releases.TypeFilter, []string{"published", "prerelease"}) {
		t.Fatalf("unexpected release type filter: %v", got.Releases.TypeFilter)
	}
	if got.TenantID != "guild-1" || got.Repository != "acme/widgets" || got.Secret != "s3cret" {
		t.Fatalf("identity fields not carried over: %+v", got)
	}
}

// TestNormalizeKeepsExplicitValues tests that configured fields survive the merge untouched.
func TestNormalizeKeepsExplicitValues(t *testing.T) {
	enabled := true
	disabled := false
	dest := "chan-42"
	whitelist := Whitelist

	got := Normalize(Partial{
		TenantID:   "guild-1",
		Repository: "acme/widgets",
		Commits: &PartialCommits{
			Enabled:      &enabled,
			Destination:  &dest,
			BranchFilter: &PartialFilter{Mode: &whitelist, List: []string{"main"}},
		},
		PullRequests: &PartialPullRequests{
			IgnoreDrafts: &disabled,
			EventFilter:  []string{"opened"},
			BranchFilter: &PartialBranch{Base: []string{"main"}},
		},
	})

	if !got.Commits.Enabled || got.Commits.Destination != "chan-42" {
		t.Fatalf("commits section lost explicit values: %+v", got.Commits)
	}
	if got.Commits.BranchFilter.Mode != Whitelist || len(got.Commits.BranchFilter.List) != 1 {
		t.Fatalf("branch filter lost explicit values: %+v", got.Commits.BranchFilter)
	}
	if got.Commits.MessageFilter.Mode != Blacklist {
		t.Fatalf("untouched message filter should keep its default")
	}
	if got.PullRequests.IgnoreDrafts {
		t.Fatalf("explicit ignoreDrafts=false was overridden")
	}
	if !reflect.DeepEqual(got.PullRequests.EventFilter, []string{"opened"}) {
		t.Fatalf("explicit event filter was overridden: %v", got.PullRequests.EventFilter)
	}
	if !reflect.DeepEqual(got.PullRequests.BranchFilter.Base, []string{"main"}) {
		t.Fatalf("base branch constraint lost: %v", got.PullRequests.BranchFilter)
	}
	if len(got.PullRequests.BranchFilter.Head) != 0 {
		t.Fatalf("head constraint should stay unconstrained")
	}
}

// TestNormalizeExplicitEmptyListKept tests that an explicitly empty list is not re-defaulted.
func TestNormalizeExplicitEmptyListKept(t *testing.T) {
	got := Normalize(Partial{
		PullRequests: &PartialPullRequests{EventFilter: []string{}},
	})
	if len(got.PullRequests.EventFilter) != 0 {
		t.Fatalf("explicitly empty event filter was replaced: %v", got.PullRequests.EventFilter)
	}
}

// TestNormalizeIdempotent tests that normalizing a complete configuration is a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	enabled := true
	dest := "chan-1"
	mode := Whitelist
	partial := Partial{
		TenantID:   "guild-9",
		Repository: "acme/widgets",
		Secret:     "hunter2",
		Enabled:    &enabled,
		Commits: &PartialCommits{
			Enabled:       &enabled,
			Destination:   &dest,
			BranchFilter:  &PartialFilter{Mode: &mode, List: []string{"main"}},
			MessageFilter: &PartialFilter{List: []string{"wip"}},
			AuthorFilter:  &PartialFilter{},
		},
		Releases: &PartialReleases{TypeFilter: []string{"published"}},
	}

	once := Normalize(partial)

	// Round-trip the complete form through JSON into a Partial: every field is
	// present, so a second Normalize must reproduce it exactly.
	encoded, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Partial
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	twice := Normalize(again)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize is not idempotent:\nfirst  %+v\nsecond %+v", once, twice)
	}
}

// TestNormalizeFromStoredJSON tests the path a record takes out of the store.
func TestNormalizeFromStoredJSON(t *testing.T) {
	stored := `{
		"commits": {"enabled": true, "destinationId": "chan-7", "authorFilter": {"mode": "whitelist", "list": ["Alice"]}},
		"issues": {"labelFilter": {"list": ["wontfix"]}}
	}`
	var partial Partial
	if err := json.Unmarshal([]byte(stored), &partial); err != nil {
		t.Fatalf("unmarshal stored config: %v", err)
	}
	got := Normalize(partial)

	if !got.Commits.Enabled {
		t.Fatalf("commits should be enabled")
	}
	if got.Commits.AuthorFilter.Mode != Whitelist || !got.Commits.AuthorFilter.Matches("alice") {
		t.Fatalf("author filter not merged: %+v", got.Commits.AuthorFilter)
	}
	if got.Issues.LabelFilter.Mode != Blacklist {
		t.Fatalf("label filter mode should default to blacklist")
	}
	if !got.Issues.LabelFilter.Matches("wontfix") {
		t.Fatalf("label filter list not merged")
	}
	if got.Releases.Enabled {
		t.Fatalf("untouched releases section must stay disabled")
	}
}

// TestBranchConstraintInclusionOnly tests the base/head inclusion semantics.
func TestBranchConstraintInclusionOnly(t *testing.T) {
	cfg := PullRequestsConfig{}
	if !cfg.AllowsBranches("main", "feature/x") {
		t.Fatalf("unconstrained filter must pass any pair")
	}
	cfg.BranchFilter.Base = []string{"main"}
	if cfg.AllowsBranches("dev", "feature/x") {
		t.Fatalf("base constraint should reject dev")
	}
	if !cfg.AllowsBranches("Main", "feature/x") {
		t.Fatalf("base constraint should be case-insensitive")
	}
	cfg.BranchFilter.Head = []string{"release"}
	if cfg.AllowsBranches("main", "feature/x") {
		t.Fatalf("head constraint should reject feature/x")
	}
}
