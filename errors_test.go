package kmedoids

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputError(t *testing.T) {
	err := invalid("k", 7, "must be in [1, N]")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrWorkerFailure)
	assert.Equal(t, "invalid k (7): must be in [1, N]", err.Error())

	cause := errors.New("boom")
	wrapped := &InvalidInputError{Field: "matrix", Reason: "not a distance matrix", cause: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "invalid matrix: not a distance matrix: boom", wrapped.Error())
}

func TestWorkerFailureError(t *testing.T) {
	cause := errors.New("task 0 panicked: oops")
	err := fmt.Errorf("run: %w", &WorkerFailureError{Phase: PhaseUpdate, Iteration: 3, Task: 0, cause: cause})

	assert.ErrorIs(t, err, ErrWorkerFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "update phase (iteration 3)")
}

func TestEmptyClusterError(t *testing.T) {
	err := &EmptyClusterError{Cluster: 2, Iteration: 5}
	assert.ErrorIs(t, err, ErrEmptyCluster)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "empty cluster 2 (iteration 5)", err.Error())
}
