package model

// CanManageTask decides whether a user may edit or delete a task routed to
// taskDivision. Admins manage everything, managers and staff manage work
// inside their own division, partners only read.
func CanManageTask(role Role, userDivision, taskDivision string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleManager, RoleStaff:
		return taskDivision == "" || userDivision == taskDivision
	default:
		return false
	}
}

// CanPostToChannel decides whether a user may send a message to channelID.
// Everyone can use the general channel and direct messages; division channels
// are limited to members of that division (admins excepted).
func CanPostToChannel(role Role, userDivision, channelID string) bool {
	if channelID == GeneralChannelID || IsDirectChannel(channelID) {
		return true
	}
	if ValidDivision(channelID) {
		return role == RoleAdmin || userDivision == channelID
	}
	// Group channels carry their own member list; the policy has no group
	// state, so those are decided by CanPostToGroup with the loaded record.
	return true
}

// CanPostToGroup decides whether a user may post into a private group
// channel. Only members of the group may post, admins excepted.
func CanPostToGroup(role Role, userID string, group ChatGroup) bool {
	if role == RoleAdmin {
		return true
	}
	for _, id := range group.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
