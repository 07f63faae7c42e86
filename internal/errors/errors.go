package errs

import (
	"fmt"
)

// Error types
const (
	TypeInternal     = "internal"
	TypeBadRequest   = "bad_request"
	TypeNotFound     = "not_found"
	TypeUnauthorized = "unauthorized"
)

type AppError struct {
	Err  error
	Msg  string
	Type string
	Code int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("type=%s, code=%d, msg=%s, err=%v", e.Type, e.Code, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
