// Package validation rejects structurally invalid write payloads before they
// reach storage.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/postboard/internal/models"
	"github.com/hongminglow/postboard/internal/models/dto"
)

var validate = newValidator()

// Error lists the JSON names of fields that are missing or blank.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

type postInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	Image string `json:"image" validate:"required"`
}

// Post checks that title, body and image are present and non-blank and
// returns them trimmed.
func Post(payload dto.PostPayload) (models.PostFields, error) {
	in := postInput{
		Title: trimmed(payload.Title),
		Body:  trimmed(payload.Body),
		Image: trimmed(payload.Image),
	}
	if err := check(in); err != nil {
		return models.PostFields{}, err
	}
	return models.PostFields{Title: in.Title, Body: in.Body, Image: in.Image}, nil
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate payload: %w", err)
	}
	out := &Error{Fields: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
