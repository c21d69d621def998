// Package datastore provides error handling helpers for database operations
package datastore

import (
	"github.com/jukevis/jukevis/internal/errors"
)

// ErrRevisionNotFound signals that no valid revision exists in the ledger.
var ErrRevisionNotFound = errors.NewStd("no valid revision found")

// dbError creates a properly categorized database error with context
func dbError(err error, operation, priority string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	if priority != "" {
		builder = builder.Priority(priority)
	}

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// validationError creates a validation error for rejected inputs
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", value).
		Build()
}

// notFoundError wraps sentinel with a categorized error so callers can match
// either with errors.Is or by category.
func notFoundError(sentinel error, resource string, context ...any) error {
	builder := errors.New(sentinel).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Priority(errors.PriorityLow).
		Context("resource", resource)

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}
