package notifier

import (
	"fmt"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

func classifyRelease(sub subscription.RepoSubscription, ev *github.ReleaseEvent) *Notification {
	cfg := sub.Releases
	// Release lifecycle actions other than "published" (created, edited,
	// deleted, ...) never notify, regardless of configuration.
	if !cfg.Enabled || ev.GetAction() != "published" {
		return nil
	}

	release := ev.GetRelease()
	releaseType := "published"
	displayType := "Release"
	if release.GetPrerelease() {
		releaseType = "prerelease"
		displayType = "Pre-release"
	}
	if !cfg.AllowsType(releaseType) {
		return nil
	}

	name := release.GetName()
	if name == "" {
		name = release.GetTagName()
	}

	body := fmt.Sprintf("**Tag:** `%s`", release.GetTagName())
	if notes := release.GetBody(); notes != "" {
		body = body + "\n\n" + truncateMarked(notes, maxReleaseNotes)
	}

	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant: sub.TenantID,
			Kind:   "release",
			Title:  fmt.Sprintf("[%s] New %s: %s", ev.GetRepo().GetName(), displayType, name),
			URL:    release.GetHTMLURL(),
			Color:  colorYellow,
			Author: notify.Author{
				Name:    release.GetAuthor().GetLogin(),
				IconURL: release.GetAuthor().GetAvatarURL(),
				URL:     release.GetAuthor().GetHTMLURL(),
			},
			Body:      body,
			Timestamp: release.GetPublishedAt().Time,
		},
	}
}
