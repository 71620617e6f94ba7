package models

import "errors"

// Sentinel errors used across repositories and services. Handlers classify
// them once at the boundary; nothing below the boundary writes HTTP status
// codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate record")
	ErrConflict   = errors.New("conflict")

	// ErrNoUnbilledDeliveries is returned when bill generation finds nothing
	// to aggregate. An empty bill is never created.
	ErrNoUnbilledDeliveries = errors.New("no unbilled deliveries found")
)
