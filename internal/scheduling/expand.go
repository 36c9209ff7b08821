package scheduling

import (
	"fmt"
	"strconv"
	"time"

	"schedule-service/internal/model"
)

// UserRef is the display projection attached to query results. It carries
// name and role only, never the full user row.
type UserRef struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Instance is one concrete calendar entry in a query result. For a single
// event it mirrors the stored row; for a repeating parent it is one computed
// occurrence with a synthetic id and a back-reference to the parent.
// Instances are never persisted.
type Instance struct {
	ID             string   `json:"id"`
	EventID        uint     `json:"event_id"`
	ParentEventID  uint     `json:"parent_event_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	StartTime      int64    `json:"start_time"`
	EndTime        int64    `json:"end_time"`
	CreatorID      uint     `json:"creator_id"`
	AssignedUserID uint     `json:"assigned_user_id"`
	Status         string   `json:"status"`
	IsRepeating    bool     `json:"is_repeating"`
	Creator        *UserRef `json:"creator"`
	AssignedUser   *UserRef `json:"assigned_user"`
}

// Expander turns stored events into the instances a calendar window shows.
// All day-of-week and day-boundary math uses the configured location; nothing
// here reads ambient time.
type Expander struct {
	loc *time.Location
}

// NewExpander creates an expander bound to the given calendar location.
func NewExpander(loc *time.Location) *Expander {
	if loc == nil {
		loc = time.Local
	}
	return &Expander{loc: loc}
}

// Location returns the calendar location the expander is bound to.
func (e *Expander) Location() *time.Location {
	return e.loc
}

// Expand produces the instances of event overlapping the half-open window
// [queryStart, queryEnd), both in epoch milliseconds. It is deterministic and
// side-effect free; instances are not sorted.
//
// A single event passes through unchanged iff its start lies in the window.
// A repeating event's stored start/end bound the recurrence window, while the
// time-of-day portion of both defines one occurrence's daily span: the walk
// visits each calendar day of the overlap between recurrence window and query
// window, emits an occurrence on days whose weekday is in the repeat set, and
// then clips once more against the query window because an occurrence's exact
// start can fall outside it at the boundaries.
func (e *Expander) Expand(event *model.Event, queryStart, queryEnd int64) []Instance {
	if !event.IsRepeating {
		if event.StartTime >= queryStart && event.StartTime < queryEnd {
			return []Instance{e.passthrough(event)}
		}
		return nil
	}

	start := time.UnixMilli(event.StartTime).In(e.loc)
	end := time.UnixMilli(event.EndTime).In(e.loc)

	// Occurrence duration: end's time-of-day projected onto the start's
	// calendar day, minus the raw start. The overall start..end span is the
	// recurrence window, not one occurrence's length.
	sameDay := time.Date(start.Year(), start.Month(), start.Day(),
		end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), e.loc)
	duration := sameDay.UnixMilli() - event.StartTime

	periodStart := event.StartTime
	if queryStart > periodStart {
		periodStart = queryStart
	}
	periodEnd := event.EndTime
	if queryEnd < periodEnd {
		periodEnd = queryEnd
	}
	if periodStart >= periodEnd {
		return nil
	}

	var instances []Instance
	cur := time.UnixMilli(periodStart).In(e.loc)

	// Walk one calendar day at a time. AddDate increments the day-of-month
	// field, so days shortened or stretched by DST transitions keep their
	// wall-clock time-of-day.
	for cur.UnixMilli() < periodEnd {
		if event.RepeatDays.Contains(int(cur.Weekday())) {
			occStart := time.Date(cur.Year(), cur.Month(), cur.Day(),
				start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), e.loc).UnixMilli()
			if occStart >= queryStart && occStart < queryEnd {
				inst := e.passthrough(event)
				inst.ID = fmt.Sprintf("%d_%d", event.ID, occStart)
				inst.ParentEventID = event.ID
				inst.StartTime = occStart
				inst.EndTime = occStart + duration
				instances = append(instances, inst)
			}
		}
		cur = cur.AddDate(0, 0, 1)
	}

	return instances
}

// passthrough copies the stored fields into an instance. Instances never
// repeat themselves.
func (e *Expander) passthrough(event *model.Event) Instance {
	return Instance{
		ID:             strconv.FormatUint(uint64(event.ID), 10),
		EventID:        event.ID,
		Title:          event.Title,
		Description:    event.Description,
		StartTime:      event.StartTime,
		EndTime:        event.EndTime,
		CreatorID:      event.CreatorID,
		AssignedUserID: event.AssignedUserID,
		Status:         event.Status,
		IsRepeating:    false,
	}
}
