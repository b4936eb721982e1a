package services

import "errors"

// Domain errors shared by the services and the storage layer. Route handlers
// translate these to HTTP status codes; anything else collapses to a 500.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateRollNumber = errors.New("roll number already exists")
	ErrRateLimited         = errors.New("too many requests")
	ErrAssetUpload         = errors.New("image upload failed")
)
