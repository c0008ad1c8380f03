package analyses

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate analysis id")
	ErrValidation  = errors.New("validation failed")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeInternal   = "internal_error"
)

// DefaultHistoryLimit is the number of analyses kept before the oldest are evicted.
const DefaultHistoryLimit = 50
