package behaviors

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// ValidationError is returned when a request fails its `validate` tags.
// The handler is not invoked.
type ValidationError struct {
	Request string
	Errors  validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			fe.Field(),
			fe.Tag(),
			fe.Value(),
		))
	}
	return fmt.Sprintf("invalid %s:\n  %s", e.Request, strings.Join(messages, "\n  "))
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}

// Validation creates middleware that validates struct requests before they
// reach their handler. Requests that are not structs, or pointers to structs,
// pass through untouched. A nil v uses validator.New().
func Validation(v *validator.Validate) mediator.Middleware {
	if v == nil {
		v = validator.New()
	}

	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		if !isStruct(request) {
			return next(ctx, request)
		}

		if err := v.StructCtx(ctx, request); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				return nil, &ValidationError{
					Request: mediator.RequestName(request),
					Errors:  validationErrs,
				}
			}
			return nil, fmt.Errorf("failed to validate %s: %w", mediator.RequestName(request), err)
		}

		return next(ctx, request)
	}
}

func isStruct(request any) bool {
	value := reflect.ValueOf(request)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return false
		}
		value = value.Elem()
	}
	return value.Kind() == reflect.Struct
}
