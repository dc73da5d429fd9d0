package notifier

import (
	"strings"
	"testing"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/subscription"
)

// TestStarOnlyStartedNotifies tests the watch-event action gate.
func TestStarOnlyStartedNotifies(t *testing.T) {
	sub := subscription.Defaults()
	sub.Stars.Enabled = true
	sub.Stars.Destination = "chan-5"

	event := &github.WatchEvent{
		Action: github.String("started"),
		Repo: &github.Repository{
			Name:            github.String("widgets"),
			HTMLURL:         github.String("https://github.com/acme/widgets"),
			StargazersCount: github.Int(41),
		},
		Sender: &github.User{Login: github.String("carol")},
	}
	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("star event dropped")
	}
	if !strings.Contains(got.Message.Body, "**41** stars") {
		t.Fatalf("unexpected body %q", got.Message.Body)
	}

	event.Action = github.String("deleted")
	if got := Classify(sub, event); got != nil {
		t.Fatalf("non-started watch action produced a notification")
	}
}

// TestForkNotification tests the fork renderable.
func TestForkNotification(t *testing.T) {
	sub := subscription.Defaults()
	sub.Forks.Enabled = true
	sub.Forks.Destination = "chan-5"

	event := &github.ForkEvent{
		Forkee: &github.Repository{
			FullName: github.String("carol/widgets"),
			HTMLURL:  github.String("https://github.com/carol/widgets"),
		},
		Repo: &github.Repository{
			Name:       github.String("widgets"),
			ForksCount: github.Int(7),
		},
		Sender: &github.User{Login: github.String("carol")},
	}
	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("fork event dropped")
	}
	if !strings.Contains(got.Message.Body, "carol/widgets") || !strings.Contains(got.Message.Body, "**7** forks") {
		t.Fatalf("unexpected body %q", got.Message.Body)
	}

	sub.Forks.Enabled = false
	if got := Classify(sub, event); got != nil {
		t.Fatalf("disabled forks config produced a notification")
	}
}

// TestIssueCommentOnlyCreated tests the comment action gate and body shape.
func TestIssueCommentOnlyCreated(t *testing.T) {
	sub := subscription.Defaults()
	sub.IssueComments.Enabled = true
	sub.IssueComments.Destination = "chan-6"

	event := &github.IssueCommentEvent{
		Action: github.String("created"),
		Issue: &github.Issue{
			Number: github.Int(12),
			Title:  github.String("Crash on startup"),
		},
		Comment: &github.IssueComment{
			Body:    github.String("I can reproduce this."),
			HTMLURL: github.String("https://github.com/acme/widgets/issues/12#issuecomment-1"),
			User:    &github.User{Login: github.String("dave")},
		},
		Repo: &github.Repository{Name: github.String("widgets")},
	}
	got := Classify(sub, event)
	if got == nil {
		t.Fatalf("comment dropped")
	}
	if got.Message.Title != "[widgets] New Comment on Issue #12" {
		t.Fatalf("unexpected title %q", got.Message.Title)
	}
	if got.Message.Author.Name != "dave" {
		t.Fatalf("comment should be attributed to its author, got %q", got.Message.Author.Name)
	}

	event.Action = github.String("edited")
	if got := Classify(sub, event); got != nil {
		t.Fatalf("edited comment produced a notification")
	}
}

// TestReviewStates tests review state styling and the submitted-only gate.
func TestReviewStates(t *testing.T) {
	sub := subscription.Defaults()
	sub.Reviews.Enabled = true
	sub.Reviews.Destination = "chan-7"

	build := func(action, state, body string) *github.PullRequestReviewEvent {
		return &github.PullRequestReviewEvent{
			Action: github.String(action),
			Review: &github.PullRequestReview{
				State:   github.String(state),
				Body:    github.String(body),
				HTMLURL: github.String("https://github.com/acme/widgets/pull/7#review-1"),
				User:    &github.User{Login: github.String("erin")},
			},
			PullRequest: &github.PullRequest{
				Number: github.Int(7),
				Title:  github.String("Add pagination"),
			},
			Repo: &github.Repository{Name: github.String("widgets")},
		}
	}

	got := Classify(sub, build("submitted", "approved", "LGTM"))
	if got == nil || got.Message.Color != colorGreen {
		t.Fatalf("approved review: %+v", got)
	}
	got = Classify(sub, build("submitted", "changes_requested", "needs tests"))
	if got == nil || got.Message.Color != colorRed {
		t.Fatalf("changes_requested review: %+v", got)
	}
	got = Classify(sub, build("submitted", "commented", ""))
	if got == nil || !strings.Contains(got.Message.Body, "*No comment provided.*") {
		t.Fatalf("commented review without body: %+v", got)
	}

	if got := Classify(sub, build("submitted", "dismissed", "x")); got != nil {
		t.Fatalf("dismissed state produced a notification")
	}
	if got := Classify(sub, build("edited", "approved", "x")); got != nil {
		t.Fatalf("non-submitted action produced a notification")
	}
}

// TestClassifyUnknownPayload tests that unhandled payload types drop.
func TestClassifyUnknownPayload(t *testing.T) {
	sub := subscription.Defaults()
	if got := Classify(sub, &github.PingEvent{}); got != nil {
		t.Fatalf("unknown payload type produced a notification")
	}
}
