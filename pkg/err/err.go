package errprocess

import (
	"errors"
	"fmt"
	"net/http"

	"qsite/pkg/logger"
)

// Kind 錯誤分類，決定回給 client 的 http status
type Kind string

const (
	// KindAuthentication missing / invalid credential
	KindAuthentication Kind = "AUTHENTICATION"
	// KindAuthorization authenticated but not permitted
	KindAuthorization Kind = "AUTHORIZATION"
	// KindNotFound resource missing, or its existence must not be revealed
	KindNotFound Kind = "NOT_FOUND"
	// KindValidation missing / malformed input
	KindValidation Kind = "VALIDATION"
	// KindUpstream data store returned an error
	KindUpstream Kind = "UPSTREAM_FAILURE"
	// KindInternal unexpected failure
	KindInternal Kind = "INTERNAL"
)

// Status http status of the kind
func (k Kind) Status() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error 帶分類與訊息 key 的錯誤; Key 對應 i18n catalog
type Error struct {
	Kind Kind
	Key  string
	Args []interface{}
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s(%s): %v", e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New create a classified error
func New(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// WithArgs message arguments for Key
func (e *Error) WithArgs(args ...interface{}) *Error {
	e.Args = args
	return e
}

// Validation shortcut
func Validation(key string) *Error {
	return New(KindValidation, key, nil)
}

// Upstream wraps a data store error
func Upstream(err error) *Error {
	return New(KindUpstream, "error.upstream", err)
}

// Internal wraps an unexpected error
func Internal(err error) *Error {
	return New(KindInternal, "error.internal", err)
}

// As 取出 *Error，非分類錯誤一律視為 INTERNAL
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind check err kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
