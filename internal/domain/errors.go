package domain

import "errors"

var (
	// ErrNotRecognized is returned when no reference entry matches a description
	ErrNotRecognized = errors.New("description not recognized")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidReference is returned when a reference table fails validation
	ErrInvalidReference = errors.New("invalid reference table")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrEntryNotFound is returned when a diary entry does not exist
	ErrEntryNotFound = errors.New("diary entry not found")

	// ErrProductNotFound is returned when a product cannot be found in USDA database
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")
)
