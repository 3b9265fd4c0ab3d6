package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCatalogUnavailable is returned when a catalog source cannot be read
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrGenerationFailed is returned when the generative model call fails
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrMalformedOutput is returned when model output cannot be parsed
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
