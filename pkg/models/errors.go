package models

import "errors"

// Sentinel errors controllers translate into status codes.
var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate maps to 409 (unique-constraint conflicts such as a
	// duplicate server IP or role name).
	ErrDuplicate = errors.New("resource already exists")
	// ErrInUse maps to 400 (deletion blocked by dependent rows).
	ErrInUse = errors.New("resource is still in use")
	// ErrNoCapacity maps to 400 (no server can take the analytic).
	ErrNoCapacity = errors.New("no server with enough capacity")
	// ErrInvalidCredentials maps to 401.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput maps to 400 (semantic failures the struct
	// validator cannot express, e.g. an unknown detection category).
	ErrInvalidInput = errors.New("invalid input")
)
