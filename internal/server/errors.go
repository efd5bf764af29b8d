package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/scoring"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrResumeNotFound indicates a score was requested without a resume and none is stored
type ErrResumeNotFound struct {
	UserID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("no resume stored for user %s", e.UserID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		badCreds     *ErrInvalidCredentials
		mismatch     *ErrPasswordMismatch
		userNotFound *ErrUserNotFound
		noResume     *ErrResumeNotFound
		validation   *ErrValidation
		invalidInput *scoring.InvalidInputError
		apiCall      *parsing.APICallError
		parseErr     *parsing.ParseError
	)
	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &noResume):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &invalidInput):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
