package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Trust score computation errors
var ErrNoDimensionInputs = errors.Wrap(BadParameterError,
	"trust score computation requires at least one dimension input")

// Adaptive scaling errors
var (
	// ErrStaleWrite is returned by the posture store when a concurrent
	// evaluation already persisted a more recent level for the same key.
	// It is a benign race, never surfaced to API callers.
	ErrStaleWrite = errors.New("stale posture write rejected")

	ErrEngineDisabled = errors.New("adaptive scaling engine is disabled")
)
