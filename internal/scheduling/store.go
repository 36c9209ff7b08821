package scheduling

import (
	"context"

	"schedule-service/internal/model"
)

// EventFilter narrows ListEvents. Zero values mean "no constraint".
// CreatorID is only consulted together with Status.
type EventFilter struct {
	Status    string
	CreatorID uint
}

// Store is the persistence boundary the scheduling core depends on. Lookups
// return (nil, nil) when the record does not exist; the core converts that
// into a tagged not-found error at the operation boundary.
type Store interface {
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)
	InsertEvent(ctx context.Context, event *model.Event) error
	PatchEvent(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteEvent(ctx context.Context, id uint) error

	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserBySubject(ctx context.Context, subject string) (*model.User, error)
	InsertUser(ctx context.Context, user *model.User) error
	PatchUser(ctx context.Context, id uint, updates map[string]interface{}) error
	ListUsers(ctx context.Context) ([]model.User, error)
}
