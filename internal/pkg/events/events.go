package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted after a successful change
const (
	CourseCreated       = "course.created"
	TermCreated         = "term.created"
	TermCourseAdded     = "term.course_added"
	StudentCreated      = "student.created"
	StudentUpdated      = "student.updated"
	StudentDeleted      = "student.deleted"
	PlanCreated         = "plan.created"
	PlanCoursesAdded    = "plan.courses_added"
	PlanCourseUpdated   = "plan.course_updated"
	PlanCourseRemoved   = "plan.course_removed"
	PlanApprovalUpdated = "plan.approval_updated"
	PlanDeleted         = "plan.deleted"
)

// Event describes a committed change to the course tracker data
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// New creates an event with a fresh id. key groups events of one entity.
func New(eventType, key string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers change events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event
type NoopPublisher struct{}

// NewNoopPublisher returns a publisher used when events are disabled
func NewNoopPublisher() Publisher {
	return NoopPublisher{}
}

// Publish implements Publisher
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher
func (NoopPublisher) Close() error { return nil }
