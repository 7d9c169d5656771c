package realtime

import (
	"strings"

	"github.com/aibekov/task-tracker/internal/domain"
)

// Private channels are named "user.<id>". There are no other channel
// families.
const channelPrefix = "user."

// ParseChannel extracts the user ID a channel name is scoped to.
// Returns "" for anything that is not a well-formed private channel.
func ParseChannel(name string) string {
	if !strings.HasPrefix(name, channelPrefix) {
		return ""
	}
	id := strings.TrimPrefix(name, channelPrefix)
	if id == "" || strings.Contains(id, ".") {
		return ""
	}
	return id
}

// ChannelName returns the private channel for a user.
func ChannelName(userID string) string {
	return channelPrefix + userID
}

// Authorize reports whether user may subscribe to channel. Only the
// owner of the embedded id is granted; a malformed name, an unknown
// channel and someone else's channel are all the same denial.
func Authorize(user *domain.User, channel string) bool {
	id := ParseChannel(channel)
	return id != "" && id == user.ID
}
