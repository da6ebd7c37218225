package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnsupportedEngine is returned when an unknown extraction engine is configured
	ErrUnsupportedEngine = errors.New("unsupported extraction engine")

	// ErrUnsupportedStorage is returned when an unknown storage backend is configured
	ErrUnsupportedStorage = errors.New("unsupported storage backend")

	// ErrUserExists is returned when creating a user whose id or email is taken
	ErrUserExists = errors.New("user already exists")

	// ErrDuplicateFavorite is returned when favoriting an already-favorited recipe
	ErrDuplicateFavorite = errors.New("recipe is already a favorite")

	// ErrLLMFailure is returned when the language model endpoint rejects a request
	ErrLLMFailure = errors.New("language model request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
