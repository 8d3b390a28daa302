package domain

import "fmt"

// ValidationError reports a client-input failure: a required field missing or
// empty on create, or an empty update payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// DuplicatePlateError reports a create or update that would violate plate
// uniqueness. Plate carries the conflicting (already normalized) plate.
type DuplicatePlateError struct {
	Plate string
}

func (e *DuplicatePlateError) Error() string {
	return fmt.Sprintf("plate %s is already registered", e.Plate)
}

// InvalidReferenceError reports a fine that references a vehicle that does
// not exist.
type InvalidReferenceError struct {
	VehicleID int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("vehicle %d does not exist", e.VehicleID)
}
