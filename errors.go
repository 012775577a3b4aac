package orgdir

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions the shells map to their own messages.
var (
	ErrNotFound      = errors.New("directory not found")
	ErrNotDirectory  = errors.New("not a directory")
	ErrNoFiles       = errors.New("no files to organize")
	ErrNoSubdirs     = errors.New("no subdirectories to reverse")
	ErrNoSubdirFiles = errors.New("no files found in subdirectories")
)

// DirError carries the operation and path for a directory-level failure.
type DirError struct {
	Op   string
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// DetailedError wraps a panic recovered during a run, with its stack.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func (e *DetailedError) Unwrap() error { return e.Err }
