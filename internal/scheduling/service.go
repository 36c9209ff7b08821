package scheduling

import (
	"context"

	"schedule-service/internal/model"

	"go.uber.org/zap"
)

// Identity is the resolved external identity of the caller, as carried by the
// auth token. Subject is the identity provider's stable user id.
type Identity struct {
	Subject string
	Name    string
	Email   string
}

// CreateEventInput carries the fields accepted when creating an event.
type CreateEventInput struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	StartTime      int64        `json:"start_time"`
	EndTime        int64        `json:"end_time"`
	AssignedUserID uint         `json:"assigned_user_id"`
	IsRepeating    bool         `json:"is_repeating"`
	RepeatDays     model.DaySet `json:"repeat_days"`
}

// UpdateEventInput carries a partial update; nil fields are left unchanged.
type UpdateEventInput struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	StartTime      *int64        `json:"start_time"`
	EndTime        *int64        `json:"end_time"`
	AssignedUserID *uint         `json:"assigned_user_id"`
	IsRepeating    *bool         `json:"is_repeating"`
	RepeatDays     *model.DaySet `json:"repeat_days"`
}

// AnnotatedEvent is a stored event row with display projections attached,
// returned by the pending-event queries (which surface raw rows awaiting a
// decision, not calendar occurrences).
type AnnotatedEvent struct {
	model.Event
	Creator      *UserRef `json:"creator"`
	AssignedUser *UserRef `json:"assigned_user"`
}

// Service orchestrates the visibility filter, the recurrence expander and the
// approval workflow over the store. Every operation takes the resolved acting
// user explicitly; nothing in here reads ambient identity.
type Service struct {
	store    Store
	expander *Expander
	log      *zap.Logger
}

// NewService creates the scheduling service.
func NewService(store Store, expander *Expander, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, expander: expander, log: log}
}

// Expander exposes the expander, mainly for wiring and tests.
func (s *Service) Expander() *Expander {
	return s.expander
}

// EnsureUser upserts the local user row for an authenticated identity. New
// users start with the default role; existing users get their name and email
// refreshed when the provider's values changed.
func (s *Service) EnsureUser(ctx context.Context, id Identity) (*model.User, error) {
	if id.Subject == "" {
		return nil, Errorf(KindUnauthenticated, "not authenticated")
	}

	name := id.Name
	if name == "" {
		name = "Anonymous"
	}

	existing, err := s.store.GetUserBySubject(ctx, id.Subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Name != name || existing.Email != id.Email {
			updates := map[string]interface{}{"name": name, "email": id.Email}
			if err := s.store.PatchUser(ctx, existing.ID, updates); err != nil {
				return nil, err
			}
			return s.store.GetUser(ctx, existing.ID)
		}
		return existing, nil
	}

	user := &model.User{
		SubjectID: id.Subject,
		Name:      name,
		Email:     id.Email,
		Role:      model.RoleDefault,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User created on first contact", zap.Uint("user_id", user.ID))
	return user, nil
}

// CurrentUser resolves the acting user for a token subject. Subjects that
// were never ensured yield a not-found error.
func (s *Service) CurrentUser(ctx context.Context, subject string) (*model.User, error) {
	if subject == "" {
		return nil, Errorf(KindUnauthenticated, "not authenticated")
	}
	user, err := s.store.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, Errorf(KindNotFound, "user not found")
	}
	return user, nil
}

// ListUsers returns every user. Any authenticated user may call it; the
// result backs the assignee picker.
func (s *Service) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateUserRole changes a user's role. Managers only.
func (s *Service) UpdateUserRole(ctx context.Context, actor *model.User, userID uint, role string) (*model.User, error) {
	if !actor.IsManager() {
		return nil, Errorf(KindForbidden, "only managers can update user roles")
	}
	if !model.ValidRole(role) {
		return nil, Errorf(KindInvalidArgument, "invalid role %q", role)
	}
	target, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, Errorf(KindNotFound, "user not found")
	}
	if err := s.store.PatchUser(ctx, userID, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	s.log.Info("User role updated",
		zap.Uint("user_id", userID),
		zap.String("role", role),
		zap.Uint("actor_id", actor.ID))
	return s.store.GetUser(ctx, userID)
}

// CreateEvent validates and stores a new single event or repeating template.
// Managers create approved events, default users create pending ones.
func (s *Service) CreateEvent(ctx context.Context, actor *model.User, input CreateEventInput) (*model.Event, error) {
	if input.StartTime >= input.EndTime {
		return nil, Errorf(KindInvalidArgument, "start time must be before end time")
	}
	if input.IsRepeating {
		if len(input.RepeatDays) == 0 {
			return nil, Errorf(KindInvalidArgument, "repeating events must have at least one repeat day")
		}
		if !input.RepeatDays.Valid() {
			return nil, Errorf(KindInvalidArgument, "repeat days must be weekday numbers between 0 and 6")
		}
	}

	assignee, err := s.store.GetUser(ctx, input.AssignedUserID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, Errorf(KindNotFound, "assigned user not found")
	}

	event := &model.Event{
		Title:          input.Title,
		Description:    input.Description,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		CreatorID:      actor.ID,
		AssignedUserID: input.AssignedUserID,
		Status:         InitialStatus(actor),
		IsRepeating:    input.IsRepeating,
	}
	if input.IsRepeating {
		event.RepeatDays = input.RepeatDays
	}

	if err := s.store.InsertEvent(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("Event created",
		zap.Uint("event_id", event.ID),
		zap.Uint("creator_id", actor.ID),
		zap.String("status", event.Status),
		zap.Bool("is_repeating", event.IsRepeating))
	return event, nil
}

// UpdateEvent applies a partial edit. Only the creator or a manager may edit;
// an edit by a non-manager creator re-opens the event for approval.
func (s *Service) UpdateEvent(ctx context.Context, actor *model.User, eventID uint, input UpdateEventInput) (*model.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, Errorf(KindNotFound, "event not found")
	}
	if err := CheckModify(event, actor); err != nil {
		return nil, err
	}

	if input.StartTime != nil && input.EndTime != nil && *input.StartTime >= *input.EndTime {
		return nil, Errorf(KindInvalidArgument, "start time must be before end time")
	}

	repeating := event.IsRepeating
	if input.IsRepeating != nil {
		repeating = *input.IsRepeating
	}
	days := event.RepeatDays
	if input.RepeatDays != nil {
		days = *input.RepeatDays
		if !days.Valid() {
			return nil, Errorf(KindInvalidArgument, "repeat days must be weekday numbers between 0 and 6")
		}
	}
	if repeating && len(days) == 0 {
		return nil, Errorf(KindInvalidArgument, "repeating events must have at least one repeat day")
	}

	if input.AssignedUserID != nil {
		assignee, err := s.store.GetUser(ctx, *input.AssignedUserID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, Errorf(KindNotFound, "assigned user not found")
		}
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.StartTime != nil {
		updates["start_time"] = *input.StartTime
	}
	if input.EndTime != nil {
		updates["end_time"] = *input.EndTime
	}
	if input.AssignedUserID != nil {
		updates["assigned_user_id"] = *input.AssignedUserID
	}
	if input.IsRepeating != nil {
		updates["is_repeating"] = *input.IsRepeating
	}
	if input.RepeatDays != nil {
		updates["repeat_days"] = *input.RepeatDays
	}
	updates["status"] = StatusAfterEdit(event, actor)

	if err := s.store.PatchEvent(ctx, eventID, updates); err != nil {
		return nil, err
	}

	s.log.Info("Event updated",
		zap.Uint("event_id", eventID),
		zap.Uint("actor_id", actor.ID),
		zap.String("status", updates["status"].(string)))
	return s.store.GetEvent(ctx, eventID)
}

// DeleteEvent removes an event. Deleting a repeating parent removes the whole
// series, since instances are derived at query time and never stored.
func (s *Service) DeleteEvent(ctx context.Context, actor *model.User, eventID uint) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return Errorf(KindNotFound, "event not found")
	}
	if err := CheckModify(event, actor); err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.log.Info("Event deleted", zap.Uint("event_id", eventID), zap.Uint("actor_id", actor.ID))
	return nil
}

// ApproveEvent drives pending -> approved. Approving twice is a conflict,
// which also turns a lost race between two managers into a reported error
// instead of silent double-processing.
func (s *Service) ApproveEvent(ctx context.Context, actor *model.User, eventID uint) (*model.Event, error) {
	if !actor.IsManager() {
		return nil, Errorf(KindForbidden, "only managers can approve events")
	}
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, Errorf(KindNotFound, "event not found")
	}
	if err := CheckApprove(event, actor); err != nil {
		return nil, err
	}
	if err := s.store.PatchEvent(ctx, eventID, map[string]interface{}{"status": model.StatusApproved}); err != nil {
		return nil, err
	}
	s.log.Info("Event approved", zap.Uint("event_id", eventID), zap.Uint("actor_id", actor.ID))
	return s.store.GetEvent(ctx, eventID)
}

// RejectEvent drives pending -> rejected.
func (s *Service) RejectEvent(ctx context.Context, actor *model.User, eventID uint) (*model.Event, error) {
	if !actor.IsManager() {
		return nil, Errorf(KindForbidden, "only managers can reject events")
	}
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, Errorf(KindNotFound, "event not found")
	}
	if err := CheckReject(event, actor); err != nil {
		return nil, err
	}
	if err := s.store.PatchEvent(ctx, eventID, map[string]interface{}{"status": model.StatusRejected}); err != nil {
		return nil, err
	}
	s.log.Info("Event rejected", zap.Uint("event_id", eventID), zap.Uint("actor_id", actor.ID))
	return s.store.GetEvent(ctx, eventID)
}

// GetVisibleEvents answers "what does actor's calendar show between
// [windowStart, windowEnd)": load candidates, prune by visibility, expand
// repeating parents into instances and attach display projections. The
// result is not sorted; callers order it as needed.
func (s *Service) GetVisibleEvents(ctx context.Context, actor *model.User, windowStart, windowEnd int64) ([]Instance, error) {
	events, err := s.store.ListEvents(ctx, EventFilter{})
	if err != nil {
		return nil, err
	}

	instances := []Instance{}
	for i := range events {
		event := &events[i]
		if !IsVisible(event, actor) {
			continue
		}
		instances = append(instances, s.expander.Expand(event, windowStart, windowEnd)...)
	}

	refs := map[uint]*UserRef{}
	for i := range instances {
		inst := &instances[i]
		if inst.Creator, err = s.userRef(ctx, refs, inst.CreatorID); err != nil {
			return nil, err
		}
		if inst.AssignedUser, err = s.userRef(ctx, refs, inst.AssignedUserID); err != nil {
			return nil, err
		}
	}
	return instances, nil
}

// GetPendingEvents returns every event awaiting a decision. Managers only.
// This surfaces raw rows, not calendar occurrences, so repeating parents show
// up once.
func (s *Service) GetPendingEvents(ctx context.Context, actor *model.User) ([]AnnotatedEvent, error) {
	if !actor.IsManager() {
		return nil, Errorf(KindForbidden, "only managers can view pending events")
	}
	events, err := s.store.ListEvents(ctx, EventFilter{Status: model.StatusPending})
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, events)
}

// GetUserPendingEvents returns the actor's own submissions still awaiting a
// decision, without expansion.
func (s *Service) GetUserPendingEvents(ctx context.Context, actor *model.User) ([]AnnotatedEvent, error) {
	events, err := s.store.ListEvents(ctx, EventFilter{Status: model.StatusPending, CreatorID: actor.ID})
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, events)
}

func (s *Service) annotate(ctx context.Context, events []model.Event) ([]AnnotatedEvent, error) {
	refs := map[uint]*UserRef{}
	annotated := make([]AnnotatedEvent, 0, len(events))
	for i := range events {
		ae := AnnotatedEvent{Event: events[i]}
		var err error
		if ae.Creator, err = s.userRef(ctx, refs, events[i].CreatorID); err != nil {
			return nil, err
		}
		if ae.AssignedUser, err = s.userRef(ctx, refs, events[i].AssignedUserID); err != nil {
			return nil, err
		}
		annotated = append(annotated, ae)
	}
	return annotated, nil
}

// userRef looks up the display projection for a user id, caching within one
// query. A missing user yields a nil projection, not an error.
func (s *Service) userRef(ctx context.Context, cache map[uint]*UserRef, id uint) (*UserRef, error) {
	if ref, ok := cache[id]; ok {
		return ref, nil
	}
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	var ref *UserRef
	if user != nil {
		ref = &UserRef{Name: user.Name, Role: user.Role}
	}
	cache[id] = ref
	return ref, nil
}
