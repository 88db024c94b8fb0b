package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appRepos "github.com/yigit/coursetracker/internal/app/repositories"
	appServices "github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
)

// defaultCourses are created in order; each may list earlier codes as prerequisites
var defaultCourses = []struct {
	code          string
	name          string
	credit        int
	prerequisites []string
}{
	{code: "CS161", name: "INTRO TO COMPUTER SCIENCE I", credit: 4},
	{code: "CS162", name: "INTRO TO COMPUTER SCIENCE II", credit: 4, prerequisites: []string{"CS161"}},
}

// CreateDefaultData creates a couple of courses and a term offering them if
// they don't exist. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, svcs *appServices.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Terms)...")
	var finalErr error // To collect potential errors without stopping the process

	ids := make(map[string]int64, len(defaultCourses))
	for _, dc := range defaultCourses {
		var prerequisiteIDs []int64
		for _, code := range dc.prerequisites {
			if id, ok := ids[code]; ok {
				prerequisiteIDs = append(prerequisiteIDs, id)
			}
		}

		err := svcs.CourseService.CreateCourse(ctx, appServices.NewCourse{
			Code:            dc.code,
			Name:            dc.name,
			Credit:          dc.credit,
			PrerequisiteIDs: prerequisiteIDs,
		})
		if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			lgr.Error().Err(err).Str("code", dc.code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		course, err := repos.CourseRepository.Get(ctx, dc.code)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if course != nil {
			ids[dc.code] = course.ID
		}
	}

	courseIDs := make([]int64, 0, len(ids))
	for _, dc := range defaultCourses {
		if id, ok := ids[dc.code]; ok {
			courseIDs = append(courseIDs, id)
		}
	}

	err := svcs.TermService.CreateTerm(ctx, appServices.NewTerm{
		Season:    "Fall",
		Year:      2024,
		StartDate: "2024-09-25",
		EndDate:   "2024-12-13",
		CourseIDs: courseIDs,
	})
	if err != nil && !errors.Is(err, apperrors.ErrTermAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default term")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}
