package kmedoids

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when arguments or the distance matrix are
	// rejected before any work starts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWorkerFailure is returned when a unit of work fails or panics.
	ErrWorkerFailure = errors.New("worker failure")

	// ErrEmptyCluster is returned under EmptyClusterFail when a cluster
	// loses all of its members.
	ErrEmptyCluster = errors.New("empty cluster")
)

// InvalidInputError describes a rejected argument.
//
// It matches ErrInvalidInput with errors.Is. The original underlying error
// (if any) can be accessed via errors.Unwrap.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
	cause  error
}

func (e *InvalidInputError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.cause)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.cause }

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// WorkerFailureError describes a failed phase.
//
// It matches ErrWorkerFailure with errors.Is. The original underlying error
// (if any) can be accessed via errors.Unwrap.
type WorkerFailureError struct {
	Phase     Phase
	Iteration int
	// Task is the index of the failed task within its phase batch, -1 if
	// unknown.
	Task int
	// Panic holds the recovered value when the task panicked.
	Panic any
	cause error
}

func (e *WorkerFailureError) Error() string {
	return fmt.Sprintf("worker failure in %s phase (iteration %d): %v", e.Phase, e.Iteration, e.cause)
}

func (e *WorkerFailureError) Unwrap() error { return e.cause }

func (e *WorkerFailureError) Is(target error) bool { return target == ErrWorkerFailure }

// EmptyClusterError reports the first cluster found without members.
//
// It matches ErrEmptyCluster with errors.Is.
type EmptyClusterError struct {
	Cluster   int
	Iteration int
	cause     error
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("empty cluster %d (iteration %d)", e.Cluster, e.Iteration)
}

func (e *EmptyClusterError) Unwrap() error { return e.cause }

func (e *EmptyClusterError) Is(target error) bool { return target == ErrEmptyCluster }

func invalid(field string, value any, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
