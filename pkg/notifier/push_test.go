package notifier

import (
	"strings"
	"testing"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/subscription"
)

func pushSub() subscription.RepoSubscription {
	sub := subscription.Defaults()
	sub.TenantID = "guild-1"
	sub.Repository = "acme/widgets"
	sub.Commits.Enabled = true
	sub.Commits.Destination = "chan-1"
	return sub
}

func pushEvent(ref string, commits ...*github.HeadCommit) *github.PushEvent {
	return &github.PushEvent{
		Ref:     github.String(ref),
		Compare: github.String("https://github.com/acme/widgets/compare/abc...def"),
		Commits: commits,
		Repo: &github.PushEventRepository{
			Name:     github.String("widgets"),
			FullName: github.String("acme/widgets"),
		},
		Sender: &github.User{Login: github.String("alice")},
	}
}

func commit(sha, message, author string) *github.HeadCommit {
	return &github.HeadCommit{
		ID:      github.String(sha),
		Message: github.String(message),
		URL:     github.String("https://github.com/acme/widgets/commit/" + sha),
		Author:  &github.CommitAuthor{Name: github.String(author)},
	}
}

// TestPushBranchWhitelist tests the end-to-end branch whitelist scenario.
func TestPushBranchWhitelist(t *testing.T) {
	sub := pushSub()
	sub.Commits.BranchFilter = subscription.FilterSpec{Mode: subscription.Whitelist, List: []string{"main"}}

	got := Classify(sub, pushEvent("refs/heads/main", commit("abcdef1234567", "fix login", "alice")))
	if got == nil {
		t.Fatalf("push on whitelisted branch was dropped")
	}
	if got.Destination != "chan-1" {
		t.Fatalf("unexpected destination %q", got.Destination)
	}
	if got.Message.Title != "[widgets:main] 1 new commit(s)" {
		t.Fatalf("unexpected title %q", got.Message.Title)
	}
	if !strings.Contains(got.Message.Body, "`abcdef1`") || !strings.Contains(got.Message.Body, "fix login") {
		t.Fatalf("body missing commit line: %q", got.Message.Body)
	}

	if got := Classify(sub, pushEvent("refs/heads/dev", commit("abcdef1234567", "fix login", "alice"))); got != nil {
		t.Fatalf("push on non-whitelisted branch produced a notification")
	}
}

// TestPushDisabledOrEmpty tests the immediate drop conditions.
func TestPushDisabledOrEmpty(t *testing.T) {
	sub := pushSub()
	sub.Commits.Enabled = false
	if got := Classify(sub, pushEvent("refs/heads/main", commit("a", "m", "alice"))); got != nil {
		t.Fatalf("disabled commits config produced a notification")
	}

	sub = pushSub()
	if got := Classify(sub, pushEvent("refs/heads/main")); got != nil {
		t.Fatalf("push with zero commits produced a notification")
	}
}

// TestPushSkipsMergeCommits tests that PR merge commits are always excluded.
func TestPushSkipsMergeCommits(t *testing.T) {
	sub := pushSub()
	event := pushEvent("refs/heads/main",
		commit("1111111222222", "Merge pull request #12 from x/y", "alice"),
		commit("3333333444444", "add feature", "bob"),
	)

	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("push dropped entirely")
	}
	if strings.Contains(got.Message.Body, "Merge pull request") {
		t.Fatalf("merge commit leaked into body: %q", got.Message.Body)
	}
	if !strings.Contains(got.Message.Title, "1 new commit(s)") {
		t.Fatalf("merge commit counted in title: %q", got.Message.Title)
	}

	// Only the merge commit: the whole event drops.
	onlyMerge := pushEvent("refs/heads/main", commit("1111111222222", "Merge pull request #12 from x/y", "alice"))
	if got := Classify(sub, onlyMerge); got != nil {
		t.Fatalf("merge-only push produced a notification")
	}
}

// TestPushAuthorFilter tests per-commit author filtering.
func TestPushAuthorFilter(t *testing.T) {
	sub := pushSub()
	sub.Commits.AuthorFilter = subscription.FilterSpec{Mode: subscription.Blacklist, List: []string{"dependabot[bot]"}}

	event := pushEvent("refs/heads/main",
		commit("1111111222222", "bump deps", "dependabot[bot]"),
		commit("3333333444444", "add feature", "alice"),
	)
	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("push dropped entirely")
	}
	if strings.Contains(got.Message.Body, "dependabot") {
		t.Fatalf("blacklisted author leaked: %q", got.Message.Body)
	}
}

// TestPushMessageFilterSubstring tests the substring semantics of the message filter.
func TestPushMessageFilterSubstring(t *testing.T) {
	sub := pushSub()
	sub.Commits.MessageFilter = subscription.FilterSpec{Mode: subscription.Blacklist, List: []string{"wip"}}

	event := pushEvent("refs/heads/main",
		commit("1111111222222", "WIP: half-finished refactor", "alice"),
		commit("3333333444444", "fix login redirect", "alice"),
	)
	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("push dropped entirely")
	}
	if strings.Contains(got.Message.Body, "half-finished") {
		t.Fatalf("filtered message leaked: %q", got.Message.Body)
	}
}

// TestPushBodyCap tests that the aggregated commit list is capped, not an error.
func TestPushBodyCap(t *testing.T) {
	sub := pushSub()
	long := strings.Repeat("x", 500)
	commits := make([]*github.HeadCommit, 0, 12)
	for i := 0; i < 12; i++ {
		commits = append(commits, commit("abcdef1234567", long, "alice"))
	}
	got := Classify(sub, pushEvent("refs/heads/main", commits...))
	if got == nil {
		t.Fatalf("push dropped")
	}
	if len([]rune(got.Message.Body)) > maxCommitListLen {
		t.Fatalf("body exceeds cap: %d", len([]rune(got.Message.Body)))
	}
}

// TestPushFirstLineOnly tests that multi-line commit messages render their first line.
func TestPushFirstLineOnly(t *testing.T) {
	sub := pushSub()
	got := Classify(sub, pushEvent("refs/heads/main", commit("abcdef1234567", "short summary\n\nlong explanation", "alice")))
	if got == nil {
		t.Fatalf("push dropped")
	}
	if strings.Contains(got.Message.Body, "long explanation") {
		t.Fatalf("body contains more than the first line: %q", got.Message.Body)
	}
}
