package feature

import "errors"

var (
	// ErrInvalidShape is returned when a shape is missing fields, has
	// non-finite coordinates or negative sizes. No feature is created.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrInvalidStyle is returned for unparseable colors or out of range
	// numbers. The previous style is kept.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrNotAttached marks operations skipped because the feature has no
	// layer or the layer has no map. It is logged, never returned.
	ErrNotAttached = errors.New("feature not attached")
)
