package notifier

import (
	"strings"
	"testing"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/subscription"
)

func prSub() subscription.RepoSubscription {
	sub := subscription.Defaults()
	sub.TenantID = "guild-1"
	sub.Repository = "acme/widgets"
	sub.PullRequests.Enabled = true
	sub.PullRequests.Destination = "chan-2"
	return sub
}

func prEvent(action string, mutate func(*github.PullRequest)) *github.PullRequestEvent {
	pr := &github.PullRequest{
		Number:  github.Int(7),
		Title:   github.String("Add pagination"),
		Draft:   github.Bool(false),
		Merged:  github.Bool(false),
		HTMLURL: github.String("https://github.com/acme/widgets/pull/7"),
		Base:    &github.PullRequestBranch{Ref: github.String("main")},
		Head:    &github.PullRequestBranch{Ref: github.String("feature/pagination")},
	}
	if mutate != nil {
		mutate(pr)
	}
	return &github.PullRequestEvent{
		Action:      github.String(action),
		PullRequest: pr,
		Repo:        &github.Repository{Name: github.String("widgets"), FullName: github.String("acme/widgets")},
		Sender:      &github.User{Login: github.String("alice")},
	}
}

// TestPullRequestStyles tests color/title selection by (action, merged).
func TestPullRequestStyles(t *testing.T) {
	cases := []struct {
		action string
		merged bool
		color  string
		title  string
	}{
		{"opened", false, colorGreen, "[widgets] Pull Request Opened #7"},
		{"reopened", false, colorGreen, "[widgets] Pull Request Reopened #7"},
		{"closed", true, colorPurple, "[widgets] Pull Request Merged #7"},
		{"closed", false, colorRed, "[widgets] Pull Request Closed #7"},
	}
	for _, tc := range cases {
		sub := prSub()
		got := Classify(sub, prEvent(tc.action, func(pr *github.PullRequest) {
			pr.Merged = github.Bool(tc.merged)
		}))
		if got == nil {
			t.Fatalf("%s/merged=%v dropped", tc.action, tc.merged)
		}
		if got.Message.Color != tc.color {
			t.Fatalf("%s/merged=%v color %q, want %q", tc.action, tc.merged, got.Message.Color, tc.color)
		}
		if got.Message.Title != tc.title {
			t.Fatalf("%s/merged=%v title %q, want %q", tc.action, tc.merged, got.Message.Title, tc.title)
		}
	}
}

// TestPullRequestActionFilter tests that unsolicited lifecycle actions drop.
func TestPullRequestActionFilter(t *testing.T) {
	sub := prSub()
	sub.PullRequests.EventFilter = []string{"opened"}
	if got := Classify(sub, prEvent("closed", nil)); got != nil {
		t.Fatalf("action outside event filter produced a notification")
	}
	if got := Classify(sub, prEvent("opened", nil)); got == nil {
		t.Fatalf("selected action dropped")
	}
}

// TestPullRequestIgnoreDrafts tests that drafts never notify while ignoreDrafts holds.
func TestPullRequestIgnoreDrafts(t *testing.T) {
	sub := prSub()
	draft := prEvent("opened", func(pr *github.PullRequest) { pr.Draft = github.Bool(true) })
	if got := Classify(sub, draft); got != nil {
		t.Fatalf("draft PR produced a notification with ignoreDrafts=true")
	}

	sub.PullRequests.IgnoreDrafts = false
	if got := Classify(sub, draft); got == nil {
		t.Fatalf("draft PR dropped with ignoreDrafts=false")
	}
}

// TestPullRequestBranchConstraints tests base/head inclusion lists.
func TestPullRequestBranchConstraints(t *testing.T) {
	sub := prSub()
	sub.PullRequests.BranchFilter.Base = []string{"release"}
	if got := Classify(sub, prEvent("opened", nil)); got != nil {
		t.Fatalf("base constraint ignored")
	}

	sub = prSub()
	sub.PullRequests.BranchFilter.Head = []string{"feature/pagination"}
	if got := Classify(sub, prEvent("opened", nil)); got == nil {
		t.Fatalf("matching head constraint dropped")
	}
}

// TestPullRequestLabelFilter tests whitelist label matching over the label set.
func TestPullRequestLabelFilter(t *testing.T) {
	sub := prSub()
	sub.PullRequests.LabelFilter = subscription.FilterSpec{Mode: subscription.Whitelist, List: []string{"release"}}

	unlabeled := prEvent("opened", nil)
	if got := Classify(sub, unlabeled); got != nil {
		t.Fatalf("whitelist with no matching label passed")
	}

	labeled := prEvent("opened", func(pr *github.PullRequest) {
		pr.Labels = []*github.Label{{Name: github.String("Release")}, {Name: github.String("docs")}}
	})
	if got := Classify(sub, labeled); got == nil {
		t.Fatalf("matching label dropped")
	}
}

// TestPullRequestBodyTruncation tests the 500-character body cap with marker.
func TestPullRequestBodyTruncation(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := Classify(prSub(), prEvent("opened", func(pr *github.PullRequest) {
		pr.Body = github.String(long)
	}))
	if got == nil {
		t.Fatalf("PR dropped")
	}
	want := "Add pagination\n\n" + strings.Repeat("a", 500) + "..."
	if got.Message.Body != want {
		t.Fatalf("unexpected body: len=%d", len(got.Message.Body))
	}

	short := strings.Repeat("b", 400)
	got = Classify(prSub(), prEvent("opened", func(pr *github.PullRequest) {
		pr.Body = github.String(short)
	}))
	if got.Message.Body != "Add pagination\n\n"+short {
		t.Fatalf("short body was altered")
	}
}

// TestPullRequestBranchFields tests that head/base render as From/To fields.
func TestPullRequestBranchFields(t *testing.T) {
	got := Classify(prSub(), prEvent("opened", nil))
	if got == nil {
		t.Fatalf("PR dropped")
	}
	if len(got.Message.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got.Message.Fields))
	}
	if got.Message.Fields[0].Value != "`feature/pagination`" || got.Message.Fields[1].Value != "`main`" {
		t.Fatalf("unexpected fields: %+v", got.Message.Fields)
	}
}
