package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers translate these to HTTP statuses,
// everything else is a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate data")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func Duplicatef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
}
