package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedule-service/internal/model"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, model.StatusApproved, InitialStatus(&model.User{Role: model.RoleManager}))
	assert.Equal(t, model.StatusPending, InitialStatus(&model.User{Role: model.RoleDefault}))
}

func TestCheckApprove(t *testing.T) {
	manager := &model.User{ID: 1, Role: model.RoleManager}
	user := &model.User{ID: 2, Role: model.RoleDefault}

	err := CheckApprove(&model.Event{Status: model.StatusPending}, user)
	assert.Equal(t, KindForbidden, KindOf(err))

	err = CheckApprove(&model.Event{Status: model.StatusApproved}, manager)
	assert.Equal(t, KindConflict, KindOf(err))

	assert.NoError(t, CheckApprove(&model.Event{Status: model.StatusPending}, manager))
}

func TestCheckReject(t *testing.T) {
	manager := &model.User{ID: 1, Role: model.RoleManager}
	user := &model.User{ID: 2, Role: model.RoleDefault}

	err := CheckReject(&model.Event{Status: model.StatusPending}, user)
	assert.Equal(t, KindForbidden, KindOf(err))

	err = CheckReject(&model.Event{Status: model.StatusApproved}, manager)
	assert.Equal(t, KindConflict, KindOf(err))

	err = CheckReject(&model.Event{Status: model.StatusRejected}, manager)
	assert.Equal(t, KindConflict, KindOf(err))

	assert.NoError(t, CheckReject(&model.Event{Status: model.StatusPending}, manager))
}

func TestCheckModify(t *testing.T) {
	event := &model.Event{CreatorID: 2}

	assert.NoError(t, CheckModify(event, &model.User{ID: 2, Role: model.RoleDefault}))
	assert.NoError(t, CheckModify(event, &model.User{ID: 1, Role: model.RoleManager}))

	err := CheckModify(event, &model.User{ID: 3, Role: model.RoleDefault})
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestStatusAfterEdit(t *testing.T) {
	event := &model.Event{CreatorID: 2, Status: model.StatusApproved}

	// A non-manager creator's edit re-opens the event for approval.
	assert.Equal(t, model.StatusPending, StatusAfterEdit(event, &model.User{ID: 2, Role: model.RoleDefault}))
	// A manager's edit leaves the status untouched.
	assert.Equal(t, model.StatusApproved, StatusAfterEdit(event, &model.User{ID: 1, Role: model.RoleManager}))
	// A manager who is also the creator keeps implicit approval.
	assert.Equal(t, model.StatusApproved, StatusAfterEdit(&model.Event{CreatorID: 1, Status: model.StatusApproved}, &model.User{ID: 1, Role: model.RoleManager}))
}
