package notifier

import (
	"fmt"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

func classifyPullRequest(sub subscription.RepoSubscription, ev *github.PullRequestEvent) *Notification {
	cfg := sub.PullRequests
	if !cfg.Enabled {
		return nil
	}

	action := ev.GetAction()
	pr := ev.GetPullRequest()

	if !cfg.AllowsAction(action) {
		return nil
	}
	if cfg.IgnoreDrafts && pr.GetDraft() {
		return nil
	}

	base := pr.GetBase().GetRef()
	head := pr.GetHead().GetRef()
	if !cfg.AllowsBranches(base, head) {
		return nil
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}
	if !cfg.LabelFilter.Passes(labels...) {
		return nil
	}

	color, title := pullRequestStyle(action, pr.GetMerged(), pr.GetNumber())

	body := pr.GetTitle()
	if desc := pr.GetBody(); desc != "" {
		body = body + "\n\n" + truncateMarked(desc, maxBodyLen)
	}

	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant: sub.TenantID,
			Kind:   "pull_request",
			Title:  fmt.Sprintf("[%s] %s", ev.GetRepo().GetName(), title),
			URL:    pr.GetHTMLURL(),
			Color:  color,
			Author: senderAuthor(ev.GetSender()),
			Body:   body,
			Fields: []notify.Field{
				{Name: "From", Value: "`" + head + "`", Inline: true},
				{Name: "To", Value: "`" + base + "`", Inline: true},
			},
			Timestamp: pr.GetUpdatedAt().Time,
		},
	}
}

// pullRequestStyle selects color and title by the (action, merged) pair:
// opened and reopened are green, closed-and-merged purple, closed red.
func pullRequestStyle(action string, merged bool, number int) (string, string) {
	switch action {
	case "opened":
		return colorGreen, fmt.Sprintf("Pull Request Opened #%d", number)
	case "reopened":
		return colorGreen, fmt.Sprintf("Pull Request Reopened #%d", number)
	case "closed":
		if merged {
			return colorPurple, fmt.Sprintf("Pull Request Merged #%d", number)
		}
		return colorRed, fmt.Sprintf("Pull Request Closed #%d", number)
	default:
		return colorNeutral, fmt.Sprintf("Pull Request #%d %s", number, action)
	}
}
