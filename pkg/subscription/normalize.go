package subscription

// Partial mirrors RepoSubscription with optional fields, matching what the
// configuration surface actually stores: tenants only persist the knobs they
// touched. Nil pointers and nil slices mean "not set".
type Partial struct {
	TenantID   string `json:"tenantId"`
	Repository string `json:"repository"`
	Secret     string `json:"secret"`
	Enabled    *bool  `json:"enabled"`

	Commits      *PartialCommits      `json:"commits"`
	PullRequests *PartialPullRequests `json:"pullRequests"`
	Issues       *PartialIssues       `json:"issues"`
	Releases     *PartialReleases     `json:"releases"`

	Stars         *PartialActivity `json:"stars"`
	Forks         *PartialActivity `json:"forks"`
	IssueComments *PartialActivity `json:"issueComments"`
	Reviews       *PartialActivity `json:"pullRequestReviews"`
}

// PartialFilter is an optionally-populated FilterSpec.
type PartialFilter struct {
	Mode *Mode    `json:"mode"`
	List []string `json:"list"`
}

// PartialCommits is the stored form of CommitsConfig.
type PartialCommits struct {
	Enabled       *bool          `json:"enabled"`
	Destination   *string        `json:"destinationId"`
	BranchFilter  *PartialFilter `json:"branchFilter"`
	MessageFilter *PartialFilter `json:"messageFilter"`
	AuthorFilter  *PartialFilter `json:"authorFilter"`
}

// PartialPullRequests is the stored form of PullRequestsConfig.
type PartialPullRequests struct {
	Enabled      *bool          `json:"enabled"`
	Destination  *string        `json:"destinationId"`
	IgnoreDrafts *bool          `json:"ignoreDrafts"`
	BranchFilter *PartialBranch `json:"branchFilter"`
	LabelFilter  *PartialFilter `json:"labelFilter"`
	EventFilter  []string       `json:"eventFilter"`
}

// PartialBranch is the stored form of BranchConstraint.
type PartialBranch struct {
	Base []string `json:"base"`
	Head []string `json:"head"`
}

// PartialIssues is the stored form of IssuesConfig.
type PartialIssues struct {
	Enabled     *bool          `json:"enabled"`
	Destination *string        `json:"destinationId"`
	LabelFilter *PartialFilter `json:"labelFilter"`
	EventFilter []string       `json:"eventFilter"`
}

// PartialReleases is the stored form of ReleasesConfig.
type PartialReleases struct {
	Enabled     *bool    `json:"enabled"`
	Destination *string  `json:"destinationId"`
	TypeFilter  []string `json:"typeFilter"`
}

// PartialActivity is the stored form of ActivityConfig.
type PartialActivity struct {
	Enabled     *bool   `json:"enabled"`
	Destination *string `json:"destinationId"`
}

// Default lifecycle-action sets applied when a tenant never configured them.
var (
	defaultPullRequestActions = []string{"opened", "closed", "reopened"}
	defaultIssueActions       = []string{"opened", "closed", "reopened"}
	defaultReleaseTypes       = []string{"published", "prerelease"}
)

// Defaults returns the canonical configuration: every notification kind
// disabled, blacklist-mode empty filters, drafts ignored, and the standard
// lifecycle-action sets.
func Defaults() RepoSubscription {
	return RepoSubscription{
		Enabled: true,
		Commits: CommitsConfig{
			BranchFilter:  FilterSpec{Mode: Blacklist},
			MessageFilter: FilterSpec{Mode: Blacklist},
			AuthorFilter:  FilterSpec{Mode: Blacklist},
		},
		PullRequests: PullRequestsConfig{
			IgnoreDrafts: true,
			LabelFilter:  FilterSpec{Mode: Blacklist},
			EventFilter:  append([]string(nil), defaultPullRequestActions...),
		},
		Issues: IssuesConfig{
			LabelFilter: FilterSpec{Mode: Blacklist},
			EventFilter: append([]string(nil), defaultIssueActions...),
		},
		Releases: ReleasesConfig{
			TypeFilter: append([]string(nil), defaultReleaseTypes...),
		},
	}
}

// Normalize fills a partial subscription out to the complete form. It is
// total: nil sections and nil fields fall back to Defaults, and it never
// fails. Normalizing the partial image of an already-complete configuration
// reproduces it unchanged.
func Normalize(partial Partial) RepoSubscription {
	out := Defaults()
	out.TenantID = partial.TenantID
	out.Repository = partial.Repository
	out.Secret = partial.Secret
	if partial.Enabled != nil {
		out.Enabled = *partial.Enabled
	}

	if c := partial.Commits; c != nil {
		mergeBool(&out.Commits.Enabled, c.Enabled)
		mergeString(&out.Commits.Destination, c.Destination)
		mergeFilter(&out.Commits.BranchFilter, c.BranchFilter)
		mergeFilter(&out.Commits.MessageFilter, c.MessageFilter)
		mergeFilter(&out.Commits.AuthorFilter, c.AuthorFilter)
	}

	if p := partial.PullRequests; p != nil {
		mergeBool(&out.PullRequests.Enabled, p.Enabled)
		mergeString(&out.PullRequests.Destination, p.Destination)
		mergeBool(&out.PullRequests.IgnoreDrafts, p.IgnoreDrafts)
		if p.BranchFilter != nil {
			if p.BranchFilter.Base != nil {
				out.PullRequests.BranchFilter.Base = p.BranchFilter.Base
			}
			if p.BranchFilter.Head != nil {
				out.PullRequests.BranchFilter.Head = p.BranchFilter.Head
			}
		}
		mergeFilter(&out.PullRequests.LabelFilter, p.LabelFilter)
		if p.EventFilter != nil {
			out.PullRequests.EventFilter = p.EventFilter
		}
	}

	if i := partial.Issues; i != nil {
		mergeBool(&out.Issues.Enabled, i.Enabled)
		mergeString(&out.Issues.Destination, i.Destination)
		mergeFilter(&out.Issues.LabelFilter, i.LabelFilter)
		if i.EventFilter != nil {
			out.Issues.EventFilter = i.EventFilter
		}
	}

	if r := partial.Releases; r != nil {
		mergeBool(&out.Releases.Enabled, r.Enabled)
		mergeString(&out.Releases.Destination, r.Destination)
		if r.TypeFilter != nil {
			out.Releases.TypeFilter = r.TypeFilter
		}
	}

	mergeActivity(&out.Stars, partial.Stars)
	mergeActivity(&out.Forks, partial.Forks)
	mergeActivity(&out.IssueComments, partial.IssueComments)
	mergeActivity(&out.Reviews, partial.Reviews)

	return out
}

func mergeBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func mergeString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func mergeFilter(dst *FilterSpec, src *PartialFilter) {
	if src == nil {
		return
	}
	if src.Mode != nil && (*src.Mode == Whitelist || *src.Mode == Blacklist) {
		dst.Mode = *src.Mode
	}
	if src.List != nil {
		dst.List = src.List
	}
}

func mergeActivity(dst *ActivityConfig, src *PartialActivity) {
	if src == nil {
		return
	}
	mergeBool(&dst.Enabled, src.Enabled)
	mergeString(&dst.Destination, src.Destination)
}
