package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Relationship and reaction codes
	NotActive         Code = 200001
	SelfReference     Code = 200002
	InvalidTargetType Code = 200003
)

var httpStatuses = map[Code]int{
	BadRequest:        http.StatusBadRequest,
	BadResponse:       http.StatusInternalServerError,
	PermissionDenied:  http.StatusForbidden,
	NotFound:          http.StatusNotFound,
	Unauthenticated:   http.StatusUnauthorized,
	AlreadyExists:     http.StatusConflict,
	Internal:          http.StatusInternalServerError,
	Unavailable:       http.StatusServiceUnavailable,
	NotImplemented:    http.StatusNotImplemented,
	TooManyRequests:   http.StatusTooManyRequests,
	NotActive:         http.StatusConflict,
	SelfReference:     http.StatusBadRequest,
	InvalidTargetType: http.StatusBadRequest,
}

// HTTPStatus returns the status code which the api server responds with for
// the given error. Errors not created by this package are internal errors.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var errx Error
	if !As(err, &errx) {
		return http.StatusInternalServerError
	}

	if status, ok := httpStatuses[errx.Code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
