package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"

	"reponotify/pkg/notify"
	"reponotify/pkg/subscription"
)

// mergeCommitPrefix marks commits that are redundant with the merged
// pull-request event and are always excluded from push notifications.
const mergeCommitPrefix = "Merge pull request"

func classifyPush(sub subscription.RepoSubscription, ev *github.PushEvent) *Notification {
	cfg := sub.Commits
	if !cfg.Enabled || len(ev.Commits) == 0 {
		return nil
	}

	branch := branchFromRef(ev.GetRef())
	if !cfg.BranchFilter.Passes(branch) {
		return nil
	}

	kept := make([]*github.HeadCommit, 0, len(ev.Commits))
	for _, commit := range ev.Commits {
		if strings.HasPrefix(commit.GetMessage(), mergeCommitPrefix) {
			continue
		}
		if !cfg.AuthorFilter.Passes(commit.GetAuthor().GetName()) {
			continue
		}
		if !cfg.MessageFilter.PassesText(commit.GetMessage()) {
			continue
		}
		kept = append(kept, commit)
	}
	if len(kept) == 0 {
		return nil
	}

	lines := make([]string, 0, len(kept))
	for _, commit := range kept {
		lines = append(lines, fmt.Sprintf("[`%s`](%s) %s - %s",
			shortSHA(commit.GetID()),
			commit.GetURL(),
			firstLine(commit.GetMessage()),
			commit.GetAuthor().GetName(),
		))
	}

	return &Notification{
		Destination: cfg.Destination,
		Message: notify.Message{
			Tenant:    sub.TenantID,
			Kind:      "push",
			Title:     fmt.Sprintf("[%s:%s] %d new commit(s)", ev.GetRepo().GetName(), branch, len(kept)),
			URL:       ev.GetCompare(),
			Color:     colorAccent,
			Author:    senderAuthor(ev.GetSender()),
			Body:      truncate(strings.Join(lines, "\n"), maxCommitListLen),
			Timestamp: time.Now().UTC(),
		},
	}
}

// branchFromRef extracts the branch name as the final path segment of a ref
// such as "refs/heads/main".
func branchFromRef(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}
