package model

import "errors"

var (
	// ErrFeedUnavailable is the only failure the feed adapter knows about
	// every reason below is wrapped by it before reaching the adapter
	ErrFeedUnavailable = errors.New("FEED_UNAVAILABLE")

	ErrRateLimitReached = errors.New("RATE_LIMIT_REACHED")
	ErrRateLimiter      = errors.New("RATE_LIMITER_ERROR")
	ErrInvalidData      = errors.New("INVALID_DATA_FOUND")
	ErrFetch            = errors.New("FETCH_ERROR")

	ErrNotFound = errors.New("NOT_FOUND")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAPIError only covers the site's own routes, feed failures never reach a client
func NewAPIError(errReason error) APIError {
	if errors.Is(errReason, ErrNotFound) {
		return APIError{
			Code:    ErrNotFound.Error(),
			Message: "the requested resource does not exist",
		}
	}

	return APIError{
		Code:    "GENERIC_ERROR",
		Message: "internal server error. contact our support with the reason code for assistance",
	}
}

// ReasonCode returns the most specific known code wrapped in err, used as a log field
func ReasonCode(err error) string {
	for _, known := range []error{ErrRateLimitReached, ErrRateLimiter, ErrInvalidData, ErrFetch, ErrFeedUnavailable} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "UNKNOWN"
}
