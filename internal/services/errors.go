package services

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every error caused by input the caller has
// to correct. Test with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

func validationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
