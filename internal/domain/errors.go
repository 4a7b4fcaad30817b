package domain

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrWatchEstablish = errors.New("watch establish error")
	ErrProcessing     = errors.New("processing error")
	ErrStorage        = errors.New("storage error")
	ErrPersistence    = errors.New("persistence error")

	ErrEventNotFound   = errors.New("event not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrInvalidPassword = errors.New("invalid event password")
	ErrInvalidToken    = errors.New("invalid or expired gallery token")
)
