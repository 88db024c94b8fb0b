package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/events"
)

// MockCourseRepository mocks the course repository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) All(ctx context.Context) ([]models.CourseWithPrerequisites, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CourseWithPrerequisites), args.Error(1)
}

func (m *MockCourseRepository) Options(ctx context.Context) ([]models.CourseOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CourseOption), args.Error(1)
}

func (m *MockCourseRepository) Get(ctx context.Context, code string) (*models.Course, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) Create(ctx context.Context, code, name string, credit int) error {
	return m.Called(ctx, code, name, credit).Error(0)
}

func (m *MockCourseRepository) AddPrerequisite(ctx context.Context, code string, prerequisiteID int64) error {
	return m.Called(ctx, code, prerequisiteID).Error(0)
}

var _ repositories.CourseRepositoryInterface = (*MockCourseRepository)(nil)

// MockTermRepository mocks the term repository
type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) All(ctx context.Context) ([]models.Term, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Term), args.Error(1)
}

func (m *MockTermRepository) Get(ctx context.Context, season string, year int) (*models.Term, error) {
	args := m.Called(ctx, season, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Term), args.Error(1)
}

func (m *MockTermRepository) Create(ctx context.Context, season string, year int, startDate, endDate string) error {
	return m.Called(ctx, season, year, startDate, endDate).Error(0)
}

func (m *MockTermRepository) AddCourse(ctx context.Context, term models.TermRef, courseID int64) error {
	return m.Called(ctx, term, courseID).Error(0)
}

var _ repositories.TermRepositoryInterface = (*MockTermRepository)(nil)

// MockStudentRepository mocks the student repository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) All(ctx context.Context) ([]models.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentRepository) AllFormatted(ctx context.Context) ([]models.StudentOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudentOption), args.Error(1)
}

func (m *MockStudentRepository) Get(ctx context.Context, studentID string) (*models.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Create(ctx context.Context, studentID, firstName, lastName string) error {
	return m.Called(ctx, studentID, firstName, lastName).Error(0)
}

func (m *MockStudentRepository) Update(ctx context.Context, firstName, lastName, studentID string) error {
	return m.Called(ctx, firstName, lastName, studentID).Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, studentID string) error {
	return m.Called(ctx, studentID).Error(0)
}

var _ repositories.StudentRepositoryInterface = (*MockStudentRepository)(nil)

// MockStudentTermPlanRepository mocks the plan repository
type MockStudentTermPlanRepository struct {
	mock.Mock
}

func (m *MockStudentTermPlanRepository) All(ctx context.Context) ([]models.StudentTermPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudentTermPlan), args.Error(1)
}

func (m *MockStudentTermPlanRepository) Get(ctx context.Context, studentID string, termID int64) (int64, bool, error) {
	args := m.Called(ctx, studentID, termID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockStudentTermPlanRepository) Create(ctx context.Context, studentID string, termID int64, advisorApproved bool) error {
	return m.Called(ctx, studentID, termID, advisorApproved).Error(0)
}

func (m *MockStudentTermPlanRepository) AddCourses(ctx context.Context, courseIDs []int64, plan models.PlanRef) error {
	return m.Called(ctx, courseIDs, plan).Error(0)
}

func (m *MockStudentTermPlanRepository) UpdateCourse(ctx context.Context, newCourseID, planID, courseID int64) error {
	return m.Called(ctx, newCourseID, planID, courseID).Error(0)
}

func (m *MockStudentTermPlanRepository) RemoveCourse(ctx context.Context, planID, courseID int64) error {
	return m.Called(ctx, planID, courseID).Error(0)
}

func (m *MockStudentTermPlanRepository) UpdateApproval(ctx context.Context, planID int64, advisorApproved bool) error {
	return m.Called(ctx, planID, advisorApproved).Error(0)
}

func (m *MockStudentTermPlanRepository) Delete(ctx context.Context, planID int64) error {
	return m.Called(ctx, planID).Error(0)
}

var _ repositories.StudentTermPlanRepositoryInterface = (*MockStudentTermPlanRepository)(nil)

// inlineTx runs the function without a database transaction
type inlineTx struct{}

func (inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
