package mmap

import "errors"

var (
	// ErrClosed is returned when a closed mapping is accessed.
	ErrClosed = errors.New("mmap: closed")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrInvalidSize is returned when the file size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid size")
)

// AccessPattern is a hint about how the mapping will be read.
type AccessPattern int

const (
	// AccessNormal applies no special treatment.
	AccessNormal AccessPattern = iota
	// AccessSequential expects a single front-to-back scan.
	AccessSequential
	// AccessRandom expects scattered reads.
	AccessRandom
)
