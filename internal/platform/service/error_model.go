package service

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeTooLarge     ErrorCode = "too_large"
	ErrorCodeRateLimited  ErrorCode = "rate_limited"
	ErrorCodeUpstream     ErrorCode = "upstream"
	ErrorCodeInternal     ErrorCode = "internal"
)

// ServiceError is the error type every module service returns to handlers.
// Reason is a stable machine-readable token; Details is optional structured data.
type ServiceError struct {
	Code    ErrorCode
	Reason  string
	Message string
	Details any
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Reason: string(code), Message: message}
}

// NewReasonError builds a ServiceError with an explicit reason token.
func NewReasonError(code ErrorCode, reason, message string) error {
	return &ServiceError{Code: code, Reason: reason, Message: message}
}

// WithDetails returns a copy of err carrying details. Non-service errors are returned unchanged.
func WithDetails(err error, details any) error {
	serviceErr, ok := AsServiceError(err)
	if !ok {
		return err
	}
	cp := *serviceErr
	cp.Details = details
	return &cp
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewRateLimitedError(message string) error {
	return NewServiceError(ErrorCodeRateLimited, message)
}

func NewUpstreamError(message string) error {
	return NewServiceError(ErrorCodeUpstream, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// IsCode reports whether err is a ServiceError with the given code.
func IsCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}

// IsReason reports whether err is a ServiceError with the given reason.
func IsReason(err error, reason string) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Reason == reason
}
