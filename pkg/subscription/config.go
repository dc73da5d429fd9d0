package subscription

// RepoSubscription is one tenant's fully-populated configuration for one
// upstream repository. Every consumer of a subscription sees this complete
// form; stored records are partial and go through Normalize first.
type RepoSubscription struct {
	TenantID   string `json:"tenantId"`
	Repository string `json:"repository"`
	Secret     string `json:"secret"`
	Enabled    bool   `json:"enabled"`

	Commits      CommitsConfig      `json:"commits"`
	PullRequests PullRequestsConfig `json:"pullRequests"`
	Issues       IssuesConfig       `json:"issues"`
	Releases     ReleasesConfig     `json:"releases"`

	Stars         ActivityConfig `json:"stars"`
	Forks         ActivityConfig `json:"forks"`
	IssueComments ActivityConfig `json:"issueComments"`
	Reviews       ActivityConfig `json:"pullRequestReviews"`
}

// CommitsConfig controls push notifications.
type CommitsConfig struct {
	Enabled       bool       `json:"enabled"`
	Destination   string     `json:"destinationId"`
	BranchFilter  FilterSpec `json:"branchFilter"`
	MessageFilter FilterSpec `json:"messageFilter"`
	AuthorFilter  FilterSpec `json:"authorFilter"`
}

// BranchConstraint restricts pull requests by base and head branch. Both
// lists are inclusion-only: an empty list leaves that side unconstrained.
type BranchConstraint struct {
	Base []string `json:"base"`
	Head []string `json:"head"`
}

// PullRequestsConfig controls pull request notifications.
type PullRequestsConfig struct {
	Enabled      bool             `json:"enabled"`
	Destination  string           `json:"destinationId"`
	IgnoreDrafts bool             `json:"ignoreDrafts"`
	BranchFilter BranchConstraint `json:"branchFilter"`
	LabelFilter  FilterSpec       `json:"labelFilter"`
	EventFilter  []string         `json:"eventFilter"`
}

// IssuesConfig controls issue notifications.
type IssuesConfig struct {
	Enabled     bool       `json:"enabled"`
	Destination string     `json:"destinationId"`
	LabelFilter FilterSpec `json:"labelFilter"`
	EventFilter []string   `json:"eventFilter"`
}

// ReleasesConfig controls release notifications. TypeFilter is a subset of
// {"published", "prerelease"}.
type ReleasesConfig struct {
	Enabled     bool     `json:"enabled"`
	Destination string   `json:"destinationId"`
	TypeFilter  []string `json:"typeFilter"`
}

// ActivityConfig is the shared shape of the kinds with no filter dimensions
// beyond an on/off switch: stars, forks, issue comments and reviews.
type ActivityConfig struct {
	Enabled     bool   `json:"enabled"`
	Destination string `json:"destinationId"`
}

// AllowsAction reports whether the lifecycle action is selected.
func (c PullRequestsConfig) AllowsAction(action string) bool {
	return containsFold(c.EventFilter, action)
}

// AllowsBranches reports whether the base/head pair satisfies the constraint.
func (c PullRequestsConfig) AllowsBranches(base, head string) bool {
	if len(c.BranchFilter.Base) > 0 && !containsFold(c.BranchFilter.Base, base) {
		return false
	}
	if len(c.BranchFilter.Head) > 0 && !containsFold(c.BranchFilter.Head, head) {
		return false
	}
	return true
}

// AllowsAction reports whether the lifecycle action is selected.
func (c IssuesConfig) AllowsAction(action string) bool {
	return containsFold(c.EventFilter, action)
}

// AllowsType reports whether the release type token is selected.
func (c ReleasesConfig) AllowsType(releaseType string) bool {
	return containsFold(c.TypeFilter, releaseType)
}
