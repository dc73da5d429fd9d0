package notifier

const (
	maxCommitListLen = 4000
	maxBodyLen       = 500
	maxReleaseNotes  = 1500
	maxCommentLen    = 1500
	truncationMarker = "..."
)

// truncateMarked caps text at max characters and appends a marker when
// anything was cut.
func truncateMarked(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + truncationMarker
}

// truncate caps text at max characters with no marker.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
