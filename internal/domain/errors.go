package domain

import "errors"

// Terminal failures of a single request. None of them is retried.
var (
	ErrUnauthenticated         = errors.New("not authenticated")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrUpstreamTransport       = errors.New("upstream transport failure")
	ErrInvalidCompletionFormat = errors.New("completion is not a JSON object")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrInvalidRange            = errors.New("invalid range")
	ErrAlreadyOnboarded        = errors.New("profile already onboarded")
)
