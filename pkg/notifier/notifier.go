// Package notifier turns classified webhook payloads into notification
// documents according to one tenant's normalized subscription. Classifiers
// are pure: they either produce a notification or drop the event, and never
// fail.
package notifier

import (
	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

// Colors follow GitHub's state palette.
const (
	colorGreen   = "#2da44e"
	colorRed     = "#cf222e"
	colorPurple  = "#8250df"
	colorAccent  = "#9900ff"
	colorYellow  = "#f1e05a"
	colorGold    = "#ffac33"
	colorViolet  = "#8957e5"
	colorBlue    = "#58a6ff"
	colorNeutral = "#6e7681"
)

// Notification pairs a rendered message with the tenant-chosen destination.
type Notification struct {
	Destination string
	Message     notify.Message
}

// Classify applies the subscription's filters to a typed webhook payload and
// renders the notification when the event passes. The payload types form a
// closed set; anything else is dropped. A nil result means drop.
func Classify(sub subscription.RepoSubscription, payload interface{}) *Notification {
	switch ev := payload.(type) {
	case *github.PushEvent:
		return classifyPush(sub, ev)
	case *github.PullRequestEvent:
		return classifyPullRequest(sub, ev)
	case *github.IssuesEvent:
		return classifyIssues(sub, ev)
	case *github.ReleaseEvent:
		return classifyRelease(sub, ev)
	case *github.WatchEvent:
		return classifyStar(sub, ev)
	case *github.ForkEvent:
		return classifyFork(sub, ev)
	case *github.IssueCommentEvent:
		return classifyIssueComment(sub, ev)
	case *github.PullRequestReviewEvent:
		return classifyReview(sub, ev)
	default:
		return nil
	}
}

func senderAuthor(sender *github.User) notify.Author {
	return notify.Author{
		Name:    sender.GetLogin(),
		IconURL: sender.GetAvatarURL(),
		URL:     sender.GetHTMLURL(),
	}
}
