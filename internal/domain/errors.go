package domain

import "errors"

var (
	// ErrNoData is returned when analysis is requested before any flyer has been parsed
	ErrNoData = errors.New("no promo data loaded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownRetailer is returned when a retailer is not in the configured registry
	ErrUnknownRetailer = errors.New("retailer not in registry")

	// ErrUnknownStrategy is returned for an unrecognized shopping-list strategy
	ErrUnknownStrategy = errors.New("unknown shopping-list strategy")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrStoreFailure is returned when the record store cannot be read or written
	ErrStoreFailure = errors.New("record store failure")
)
