package conversation

import (
	"regexp"
	"strings"
)

var quickReplyPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// ParseQuickReplies pulls every [bracketed] option out of raw text.
// It returns the remaining text, trimmed, and the options in order of
// appearance. Text without brackets comes back trimmed with no options.
func ParseQuickReplies(raw string) (string, []string) {
	matches := quickReplyPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(raw), nil
	}

	replies := make([]string, 0, len(matches))
	for _, m := range matches {
		replies = append(replies, m[1])
	}
	text := quickReplyPattern.ReplaceAllString(raw, "")
	return strings.TrimSpace(text), replies
}
