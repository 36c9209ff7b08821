package scheduling

import "schedule-service/internal/model"

// The approval workflow: events start pending unless a manager created them,
// managers drive pending -> approved/rejected, and an edit by a non-manager
// creator re-opens the event for approval.

// InitialStatus returns the status a newly created event starts in.
func InitialStatus(creator *model.User) string {
	if creator.IsManager() {
		return model.StatusApproved
	}
	return model.StatusPending
}

// CheckApprove validates the approve transition for actor on event.
func CheckApprove(event *model.Event, actor *model.User) error {
	if !actor.IsManager() {
		return Errorf(KindForbidden, "only managers can approve events")
	}
	if event.Status == model.StatusApproved {
		return Errorf(KindConflict, "event is already approved")
	}
	return nil
}

// CheckReject validates the reject transition for actor on event.
func CheckReject(event *model.Event, actor *model.User) error {
	if !actor.IsManager() {
		return Errorf(KindForbidden, "only managers can reject events")
	}
	if event.Status != model.StatusPending {
		return Errorf(KindConflict, "only pending events can be rejected")
	}
	return nil
}

// CheckModify validates that actor may edit or delete event.
func CheckModify(event *model.Event, actor *model.User) error {
	if event.CreatorID != actor.ID && !actor.IsManager() {
		return Errorf(KindForbidden, "only the creator or a manager can modify this event")
	}
	return nil
}

// StatusAfterEdit returns the status event holds once actor's edit lands.
// A non-manager creator's edit is a re-submission and goes back to pending;
// a manager's edit leaves the status untouched.
func StatusAfterEdit(event *model.Event, actor *model.User) string {
	if !actor.IsManager() && event.CreatorID == actor.ID {
		return model.StatusPending
	}
	return event.Status
}
