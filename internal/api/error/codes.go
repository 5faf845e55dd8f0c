// Package error contains the API error codes and the JSON error body.
package error

import (
	"encoding/json"
	"net/http"
)

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	NotAuthenticated    ErrorCode = "not_authenticated"
	NotFound            ErrorCode = "not_found"
	MethodNotAllowed    ErrorCode = "method_not_allowed"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	NotAuthenticated:    http.StatusUnauthorized,
	NotFound:            http.StatusNotFound,
	MethodNotAllowed:    http.StatusMethodNotAllowed,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}

type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	ErrorID string `json:"error_id"`
}

func (e *Error) Error() string {
	return e.Message
}

// EncodeError writes an error body for code. The error id ties the
// response to the request's log records.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(Error{
		Status:  status,
		Code:    code.String(),
		Message: message,
		ErrorID: errorID,
	})
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
