package model

import "strings"

// DirectChannelID derives the channel id for a direct message between two
// users. The pair is sorted before joining so the id is the same no matter
// which side initiates the conversation.
func DirectChannelID(userA, userB string) string {
	a := strings.TrimSpace(userA)
	b := strings.TrimSpace(userB)
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// IsDirectChannel reports whether channelID names a direct-message channel
// rather than a division, group, or the general channel.
func IsDirectChannel(channelID string) bool {
	if channelID == GeneralChannelID || ValidDivision(channelID) {
		return false
	}
	return strings.Contains(channelID, "_")
}
