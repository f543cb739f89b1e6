package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"notemark/dto"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationResult is the outcome of checking a payload: field name to message.
type ValidationResult struct {
	IsValid bool
	Errors  map[string]string
}

func newResult() ValidationResult {
	return ValidationResult{IsValid: true, Errors: map[string]string{}}
}

func (r *ValidationResult) add(field, message string) {
	r.Errors[field] = message
	r.IsValid = false
}

// check validates a single value against a validator tag and records the first failure.
func (r *ValidationResult) check(field, label string, value interface{}, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		r.add(field, fieldMessage(label, fieldErrs[0]))
		return
	}
	r.add(field, fmt.Sprintf("%s is invalid", label))
}

func fieldMessage(label string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "url":
		return "Invalid URL format"
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// ValidateNote checks a note for creation: every required field must be present.
func ValidateNote(req *dto.NoteRequest) ValidationResult {
	return validateNote(req, false)
}

// ValidateNoteUpdate checks only the fields present in a partial update.
func ValidateNoteUpdate(req *dto.NoteRequest) ValidationResult {
	return validateNote(req, true)
}

func validateNote(req *dto.NoteRequest, partial bool) ValidationResult {
	result := newResult()
	if !partial || req.Title != nil {
		result.check("title", "Title", strings.TrimSpace(dto.StringValue(req.Title)),
			fmt.Sprintf("required,max=%d", MaxTitleLength))
	}
	if !partial || req.Content != nil {
		result.check("content", "Content", strings.TrimSpace(dto.StringValue(req.Content)), "required")
	}
	return result
}

// ValidateBookmark checks a bookmark for creation.
func ValidateBookmark(req *dto.BookmarkRequest) ValidationResult {
	return validateBookmark(req, false)
}

// ValidateBookmarkUpdate checks only the fields present in a partial update.
func ValidateBookmarkUpdate(req *dto.BookmarkRequest) ValidationResult {
	return validateBookmark(req, true)
}

func validateBookmark(req *dto.BookmarkRequest, partial bool) ValidationResult {
	result := newResult()
	if !partial || req.URL != nil {
		url := strings.TrimSpace(dto.StringValue(req.URL))
		if url == "" {
			result.add("url", "URL is required")
		} else {
			result.check("url", "URL", url, "url")
		}
	}
	if req.Title != nil {
		result.check("title", "Title", strings.TrimSpace(*req.Title),
			fmt.Sprintf("max=%d", MaxTitleLength))
	}
	if req.Description != nil {
		result.check("description", "Description", strings.TrimSpace(*req.Description),
			fmt.Sprintf("max=%d", MaxDescriptionLength))
	}
	return result
}

// ValidateStruct runs the `validate` tags of s and returns per-field messages keyed by JSON name.
func ValidateStruct(s interface{}) ValidationResult {
	result := newResult()
	err := validate.Struct(s)
	if err == nil {
		return result
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.add("body", "Invalid request body")
		return result
	}
	for _, e := range fieldErrs {
		field := e.Field()
		if _, seen := result.Errors[field]; seen {
			continue
		}
		result.add(field, fieldMessage(labelFor(field), e))
	}
	return result
}

func labelFor(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
