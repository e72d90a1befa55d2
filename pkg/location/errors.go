package location

import "errors"

var (
	// ErrNotFound is returned when a locations file does not exist.
	ErrNotFound = errors.New("locations file not found")
	// ErrParse is returned when a coordinate or metadata field has an invalid value.
	ErrParse = errors.New("invalid location value")
	// ErrInvalidFormat is returned when a JSON body matches neither the array nor the wrapped shape.
	ErrInvalidFormat = errors.New("invalid location json structure")
)
