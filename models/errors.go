package models

import "errors"

// Shared sentinel errors. Callers match them with errors.Is after any
// amount of fmt.Errorf("...: %w", err) wrapping.
var (
	ErrNodeNotFound     = errors.New("supply: node not found")
	ErrInvalidCriterion = errors.New("supply: invalid route criterion")
	ErrNotParcel        = errors.New("supply: node is not a crop parcel")
)
