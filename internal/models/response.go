package models

import "errors"

// Response is the envelope every JSON endpoint answers with. Code names the
// error kind so clients need not parse Error.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// FailureResponse reports err under its taxonomy code with msg as the
// human readable text.
func FailureResponse(err error, msg string) Response {
	resp := ErrorResponse(msg)
	resp.Code = ErrorCode(err)
	return resp
}

// ErrorCode names the kind of err, or "internal" for anything outside the
// taxonomy.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_failed"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	}
	return "internal"
}
