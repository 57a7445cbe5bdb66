package service

import "errors"

// Core error taxonomy. All of these are recoverable at the API boundary:
// handlers map them to 4xx responses and the caller re-prompts.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)
