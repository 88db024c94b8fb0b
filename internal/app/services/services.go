package services

import (
	"context"
	"errors"

	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
	"github.com/yigit/coursetracker/internal/pkg/logger"
)

// Transactor runs fn inside one database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Services holds all the service instances
type Services struct {
	CourseService          CourseService
	TermService            TermService
	StudentService         StudentService
	StudentTermPlanService StudentTermPlanService
}

// NewServices wires the services over the repositories
func NewServices(repos *repositories.Repositories, tx Transactor, publisher events.Publisher) *Services {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &Services{
		CourseService:          NewCourseService(repos.CourseRepository, tx, publisher),
		TermService:            NewTermService(repos.TermRepository, tx, publisher),
		StudentService:         NewStudentService(repos.StudentRepository, publisher),
		StudentTermPlanService: NewStudentTermPlanService(repos.StudentTermPlanRepository, tx, publisher),
	}
}

// publish emits a change event. The change is already committed, so a
// delivery failure is logged and not returned.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("event", event.Type).Str("key", event.Key).Msg("Failed to publish change event")
	}
}

// describe attaches a response message to a repository error of the given kind
func describe(err, kind error, message string) error {
	if err == nil || !errors.Is(err, kind) {
		return err
	}
	return &apperrors.CustomError{Err: err, Message: message}
}
