package storage

import "errors"

var (
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrDuplicateCode      = errors.New("duplicate category code")
)
