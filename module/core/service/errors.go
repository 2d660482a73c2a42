package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrHistoryUnavailable = errors.New("location history unavailable")
	ErrInvalidTransition  = errors.New("invalid alert status transition")
)
