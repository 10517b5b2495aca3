package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateCategoryInput is the validated payload of a create request.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=20"`
	Description string `json:"description" validate:"required,min=2,max=100"`
}

// Validate returns every constraint violation in the input, or nil.
func (in CreateCategoryInput) Validate() []FieldViolation {
	return collectViolations(validate.Struct(in))
}

// Category builds the record to persist from the input.
func (in CreateCategoryInput) Category() *Category {
	return &Category{Name: in.Name, Description: in.Description}
}

// UpdateCategoryInput is the validated payload of a partial update.
// Absent fields stay nil and are left untouched by the store.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=20"`
	Description *string `json:"description" validate:"omitempty,min=2,max=100"`
}

// Validate returns every constraint violation in the input, or nil.
// An update carrying no fields at all is itself a violation.
func (in UpdateCategoryInput) Validate() []FieldViolation {
	violations := collectViolations(validate.Struct(in))
	if in.Name == nil && in.Description == nil {
		violations = append(violations, FieldViolation{
			Field: "payload",
			Rule:  "required",
			Msg:   "at least one of name or description must be provided",
		})
	}
	return violations
}

func (in UpdateCategoryInput) Patch() CategoryPatch {
	return CategoryPatch{Name: in.Name, Description: in.Description}
}

func collectViolations(err error) []FieldViolation {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []FieldViolation{{Field: "payload", Rule: "invalid", Msg: err.Error()}}
	}

	violations := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, FieldViolation{
			Field: strings.ToLower(fe.Field()),
			Rule:  fe.Tag(),
			Msg:   violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}
