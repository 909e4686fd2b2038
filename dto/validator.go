package dto

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/salon-lingo/admin_api/shared"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("lesson_type", validateLessonType)
	validate.RegisterValidation("lesson_difficulty", validateDifficulty)
	validate.RegisterValidation("curriculum_category", validateCategory)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateLessonType(fl validator.FieldLevel) bool {
	return slices.Contains(shared.LessonTypes, fl.Field().String())
}

func validateDifficulty(fl validator.FieldLevel) bool {
	return slices.Contains(shared.Difficulties, fl.Field().String())
}

func validateCategory(fl validator.FieldLevel) bool {
	return slices.Contains(shared.CurriculumCategories, fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			case "lesson_type":
				message = fieldError.Field() + " must be a valid lesson type"
			case "lesson_difficulty":
				message = fieldError.Field() + " must be a valid difficulty"
			case "curriculum_category":
				message = fieldError.Field() + " must be a valid category"
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
