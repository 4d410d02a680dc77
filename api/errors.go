package api

import "errors"

// Upstream failure kinds. The coordinator maps these onto its silent,
// retryable and fatal tiers; see coordinator.Refresh.
var (
	// ErrAuthFail indicates failed authorization
	ErrAuthFail = errors.New("authorization failed")

	// ErrInternal indicates a transient upstream server error
	ErrInternal = errors.New("upstream internal error")

	// ErrValidation indicates an upstream response that failed decoding
	ErrValidation = errors.New("invalid upstream response")

	// ErrConnectTimeout indicates the upstream could not be reached
	ErrConnectTimeout = errors.New("connect timeout")

	// ErrReadTimeout indicates the upstream accepted the connection but was
	// too slow to answer
	ErrReadTimeout = errors.New("read timeout")
)
