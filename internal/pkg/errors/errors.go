package errors

import (
	"errors"
	"fmt"

	"github.com/mountain-explorer/internal/domain"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал и для копий с деталями
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с деталями (предопределенные ошибки не мутируются)
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage возвращает копию ошибки с другим сообщением
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// FromQueryFailure переводит неудачу Overpass в ошибку API
func FromQueryFailure(qf *domain.QueryFailure) *AppError {
	var base *AppError
	switch qf.Reason {
	case domain.ReasonRateLimited:
		base = ErrUpstreamRateLimited
	case domain.ReasonUpstreamBusy:
		base = ErrUpstreamBusy
	case domain.ReasonNetworkTimeout:
		base = ErrUpstreamTimeout
	default:
		base = ErrUpstreamFailed
	}

	details := map[string]interface{}{
		"reason": string(qf.Reason),
	}
	if qf.StatusCode != 0 {
		details["upstream_status"] = qf.StatusCode
	}
	return base.WithDetails(details)
}

// ToAppError приводит произвольную ошибку к AppError
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var qf *domain.QueryFailure
	if errors.As(err, &qf) {
		return FromQueryFailure(qf)
	}

	return ErrInternalServer
}
