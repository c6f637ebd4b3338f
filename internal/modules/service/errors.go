package service

import (
	"errors"

	"github.com/quokkabay/quokkabay/internal/infra/identity"
)

var (
	ErrUnauthenticated = identity.ErrUnauthenticated
	ErrSurveyNotFound  = errors.New("survey not found")

	// Generation errors are all reported to clients as one generic failure.
	ErrGenerationEmptyResponse = errors.New("language model returned no content")
	ErrGenerationParse         = errors.New("language model returned unparsable content")
	ErrGenerationUnavailable   = errors.New("language model request failed")

	ErrInvalidZipCode  = errors.New("invalid zip code")
	ErrInvalidHobbies  = errors.New("hobbies must list 1 to 25 entries of at most 64 characters")
	ErrInvalidActivity = errors.New("invalid activity payload")
)

// StoreError wraps a persistence failure. Its message is the store's own message.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidZipCode) ||
		errors.Is(err, ErrInvalidHobbies) ||
		errors.Is(err, ErrInvalidActivity)
}

func IsGeneration(err error) bool {
	return errors.Is(err, ErrGenerationEmptyResponse) ||
		errors.Is(err, ErrGenerationParse) ||
		errors.Is(err, ErrGenerationUnavailable)
}
