package notifier

import (
	"fmt"
	"time"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

func classifyStar(sub subscription.RepoSubscription, ev *github.WatchEvent) *Notification {
	cfg := sub.Stars
	if !cfg.Enabled || ev.GetAction() != "started" {
		return nil
	}

	repo := ev.GetRepo()
	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant:    sub.TenantID,
			Kind:      "star",
			Title:     fmt.Sprintf("[%s] New Star", repo.GetName()),
			URL:       repo.GetHTMLURL(),
			Color:     colorGold,
			Author:    senderAuthor(ev.GetSender()),
			Body:      fmt.Sprintf("The repository now has **%d** stars.", repo.GetStargazersCount()),
			Timestamp: time.Now().UTC(),
		},
	}
}

func classifyFork(sub subscription.RepoSubscription, ev *github.ForkEvent) *Notification {
	cfg := sub.Forks
	if !cfg.Enabled {
		return nil
	}

	forkee := ev.GetForkee()
	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant: sub.TenantID,
			Kind:   "fork",
			Title:  fmt.Sprintf("[%s] Repository Forked", ev.GetRepo().GetName()),
			URL:    forkee.GetHTMLURL(),
			Color:  colorViolet,
			Author: senderAuthor(ev.GetSender()),
			Body: fmt.Sprintf("Forked to **[%s](%s)**. The repository now has **%d** forks.",
				forkee.GetFullName(), forkee.GetHTMLURL(), ev.GetRepo().GetForksCount()),
			Timestamp: time.Now().UTC(),
		},
	}
}

func classifyIssueComment(sub subscription.RepoSubscription, ev *github.IssueCommentEvent) *Notification {
	cfg := sub.IssueComments
	if !cfg.Enabled || ev.GetAction() != "created" {
		return nil
	}

	issue := ev.GetIssue()
	comment := ev.GetComment()
	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant: sub.TenantID,
			Kind:   "issue_comment",
			Title:  fmt.Sprintf("[%s] New Comment on Issue #%d", ev.GetRepo().GetName(), issue.GetNumber()),
			URL:    comment.GetHTMLURL(),
			Color:  colorBlue,
			Author: notify.Author{
				Name:    comment.GetUser().GetLogin(),
				IconURL: comment.GetUser().GetAvatarURL(),
				URL:     comment.GetUser().GetHTMLURL(),
			},
			Body:      "**" + issue.GetTitle() + "**\n\n" + truncateMarked(comment.GetBody(), maxCommentLen),
			Timestamp: comment.GetCreatedAt().Time,
		},
	}
}

func classifyReview(sub subscription.RepoSubscription, ev *github.PullRequestReviewEvent) *Notification {
	cfg := sub.Reviews
	if !cfg.Enabled || ev.GetAction() != "submitted" {
		return nil
	}

	review := ev.GetReview()
	pr := ev.GetPullRequest()

	var color, state string
	switch review.GetState() {
	case "approved":
		color, state = colorGreen, "Approved"
	case "changes_requested":
		color, state = colorRed, "Changes Requested"
	case "commented":
		color, state = colorBlue, "Commented"
	default:
		return nil
	}

	body := "**" + pr.GetTitle() + "**\n\n"
	if review.GetBody() != "" {
		body += truncateMarked(review.GetBody(), maxCommentLen)
	} else {
		body += "*No comment provided.*"
	}

	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant: sub.TenantID,
			Kind:   "pull_request_review",
			Title:  fmt.Sprintf("[%s] PR #%d Review: %s", ev.GetRepo().GetName(), pr.GetNumber(), state),
			URL:    review.GetHTMLURL(),
			Color:  color,
			Author: notify.Author{
				Name:    review.GetUser().GetLogin(),
				IconURL: review.GetUser().GetAvatarURL(),
				URL:     review.GetUser().GetHTMLURL(),
			},
			Body:      body,
			Timestamp: review.GetSubmittedAt().Time,
		},
	}
}
