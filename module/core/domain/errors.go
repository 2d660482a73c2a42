package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrStaleStatus is returned by a conditional status write when the stored
	// status no longer matches the one the caller read.
	ErrStaleStatus = errors.New("status changed concurrently")
)
