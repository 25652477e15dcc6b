package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound = errors.New("event not found")
	ErrTagNotFound   = errors.New("tag not found")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrInvalidInput  = errors.New("invalid input")
)
