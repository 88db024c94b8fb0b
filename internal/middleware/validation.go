package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/validation"
)

// RegisterValidators adds the course tracker rules to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"season": func(fl validator.FieldLevel) bool {
			_, ok := validation.NormalizeSeason(fl.Field().String())
			return ok
		},
		"course_code": func(fl validator.FieldLevel) bool {
			return validation.IsValidCourseCode(fl.Field().String())
		},
		"student_id": func(fl validator.FieldLevel) bool {
			return validation.IsValidStudentID(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// BindJSON binds the request body into obj and reports binding failures as
// validation errors. A missing required field yields the generic
// missing-attributes message.
func BindJSON(c *gin.Context, obj interface{}) error {
	return BindError(c.ShouldBindJSON(obj))
}

// Bind is BindJSON for handlers that also accept form posts
func Bind(c *gin.Context, obj interface{}) error {
	return BindError(c.ShouldBind(obj))
}

// BindError converts a gin binding error into an application error
func BindError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" || fe.Tag() == "required_if" {
				return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
			}
		}
		return apperrors.NewValidationError(formatValidationError(fieldErrs[0]))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperrors.NewBadRequestError("Request body must be valid JSON")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.NewBadRequestError(typeErr.Field + " has an invalid type")
	}

	return apperrors.NewValidationError(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be formatted as YYYY-MM-DD"
	case "season":
		return fmt.Sprintf("%v is not a valid season", e.Value())
	case "course_code":
		return fmt.Sprintf("%v is not a valid course code", e.Value())
	case "student_id":
		return "Student id must be letters and digits only"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
