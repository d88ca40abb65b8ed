package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotRegistered  = errors.New("user is not registered")
	ErrInvalidToken   = errors.New("invalid sync token")
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrServiceStopped = errors.New("service is not started")
)
