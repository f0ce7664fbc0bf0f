package repository

import "errors"

var (
	// ErrInvalidImageURL indicates an unacceptable image URL
	ErrInvalidImageURL = errors.New("invalid image URL")

	// ErrEmptyPayload indicates an empty upload or base64 payload
	ErrEmptyPayload = errors.New("empty image payload")
)
