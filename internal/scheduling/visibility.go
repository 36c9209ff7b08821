package scheduling

import "schedule-service/internal/model"

// IsVisible decides whether user may see event in query results.
//
// Approved events are visible to everyone. Pending events are visible to
// their creator and to managers. Rejected events (and anything else) are
// hidden. The predicate runs against the raw stored row, so an invisible
// repeating parent never contributes instances downstream.
func IsVisible(event *model.Event, user *model.User) bool {
	switch event.Status {
	case model.StatusApproved:
		return true
	case model.StatusPending:
		return event.CreatorID == user.ID || user.IsManager()
	default:
		return false
	}
}
