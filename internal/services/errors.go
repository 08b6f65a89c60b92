package services

import (
	"errors"
	"fmt"
	"net/http"

	"belakoo-backend-go/internal/store"
)

type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: http.StatusForbidden, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Status: http.StatusConflict, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// fromStore turns store sentinels into client errors naming entity.
func fromStore(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound(entity + " not found")
	case errors.Is(err, store.ErrConflict):
		return ErrConflict(entity + " already exists")
	default:
		return WrapError(err, entity)
	}
}
