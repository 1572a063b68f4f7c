// Package apperr defines the error taxonomy shared by every layer. Each kind
// is a zeebo/errs class so wrapped errors keep their classification across
// package boundaries and map to one HTTP status at the edge.
package apperr

import (
	"net/http"

	"github.com/zeebo/errs"
)

var (
	Validation        = errs.Class("validation error")
	Authentication    = errs.Class("authentication error")
	Authorization     = errs.Class("authorization error")
	NotFound          = errs.Class("not found")
	Conflict          = errs.Class("conflict")
	InvalidTransition = errs.Class("invalid transition")
	Database          = errs.Class("database error")
)

// Type tags carried in the response envelope, matching the taxonomy names
// the clients already switch on.
const (
	TypeValidation        = "VALIDATION_ERROR"
	TypeAuthentication    = "AUTHENTICATION_ERROR"
	TypeAuthorization     = "AUTHORIZATION_ERROR"
	TypeNotFound          = "NOT_FOUND"
	TypeConflict          = "CONFLICT_ERROR"
	TypeInvalidTransition = "INVALID_TRANSITION"
	TypeInternal          = "INTERNAL_ERROR"
)

// HTTPStatus maps an error to its response status and type tag. Anything
// outside the taxonomy is an internal error.
func HTTPStatus(err error) (int, string) {
	switch {
	case Validation.Has(err):
		return http.StatusBadRequest, TypeValidation
	case InvalidTransition.Has(err):
		return http.StatusBadRequest, TypeInvalidTransition
	case Authentication.Has(err):
		return http.StatusUnauthorized, TypeAuthentication
	case Authorization.Has(err):
		return http.StatusForbidden, TypeAuthorization
	case NotFound.Has(err):
		return http.StatusNotFound, TypeNotFound
	case Conflict.Has(err):
		return http.StatusConflict, TypeConflict
	default:
		return http.StatusInternalServerError, TypeInternal
	}
}

// IsOperational reports whether the error is an expected business failure
// (logged at warn) as opposed to an internal one (logged at error).
func IsOperational(err error) bool {
	status, _ := HTTPStatus(err)
	return status < http.StatusInternalServerError
}
