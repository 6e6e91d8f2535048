package services

import "errors"

// Sentinel errors shared by the store and the services. Controllers map
// these onto HTTP status codes with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("resource not found")
	ErrInternal        = errors.New("internal error")
)
