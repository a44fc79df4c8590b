package models

import "errors"

// ErrInvalidArgument is returned when a vehicle or fleet operation
// receives a value that would break the record's invariants.
var ErrInvalidArgument = errors.New("invalid argument")
