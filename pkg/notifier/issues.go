package notifier

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

func classifyIssues(sub subscription.RepoSubscription, ev *github.IssuesEvent) *Notification {
	cfg := sub.Issues
	if !cfg.Enabled {
		return nil
	}

	action := ev.GetAction()
	issue := ev.GetIssue()

	if !cfg.AllowsAction(action) {
		return nil
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	if !cfg.LabelFilter.Passes(labels...) {
		return nil
	}

	color, title := issueStyle(action, issue.GetNumber())

	body := "**" + issue.GetTitle() + "**"
	if desc := issue.GetBody(); desc != "" {
		body = body + "\n\n" + truncateMarked(desc, maxBodyLen)
	}

	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant:    sub.TenantID,
			Kind:      "issues",
			Title:     fmt.Sprintf("[%s] %s", ev.GetRepo().GetName(), title),
			URL:       issue.GetHTMLURL(),
			Color:     color,
			Author:    senderAuthor(ev.GetSender()),
			Body:      body,
			Timestamp: issue.GetUpdatedAt().Time,
		},
	}
}

func issueStyle(action string, number int) (string, string) {
	switch action {
	case "opened", "reopened":
		return colorGreen, fmt.Sprintf("Issue %s #%d", capitalize(action), number)
	case "closed":
		return colorRed, fmt.Sprintf("Issue Closed #%d", number)
	default:
		return colorNeutral, fmt.Sprintf("Issue #%d %s", number, action)
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
