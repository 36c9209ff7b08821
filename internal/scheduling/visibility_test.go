package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedule-service/internal/model"
)

func TestIsVisible(t *testing.T) {
	creator := &model.User{ID: 1, Role: model.RoleDefault}
	other := &model.User{ID: 2, Role: model.RoleDefault}
	manager := &model.User{ID: 3, Role: model.RoleManager}

	tests := []struct {
		name    string
		status  string
		user    *model.User
		visible bool
	}{
		{"approved visible to creator", model.StatusApproved, creator, true},
		{"approved visible to other user", model.StatusApproved, other, true},
		{"approved visible to manager", model.StatusApproved, manager, true},
		{"pending visible to creator", model.StatusPending, creator, true},
		{"pending hidden from other user", model.StatusPending, other, false},
		{"pending visible to manager", model.StatusPending, manager, true},
		{"rejected hidden from creator", model.StatusRejected, creator, false},
		{"rejected hidden from other user", model.StatusRejected, other, false},
		{"rejected hidden from manager", model.StatusRejected, manager, false},
		{"unknown status hidden", "archived", manager, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.Event{ID: 10, CreatorID: creator.ID, Status: tt.status}
			assert.Equal(t, tt.visible, IsVisible(event, tt.user))
		})
	}
}
