package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeActionTooLong       Code = "ACTION_TOO_LONG"
	CodeObservationsTooLong Code = "OBSERVATIONS_TOO_LONG"
	CodeInvalidTemplate     Code = "INVALID_TEMPLATE"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInvalidAuthToken    Code = "INVALID_AUTH_TOKEN"
	CodeForbidden           Code = "FORBIDDEN"
	CodeNotFound            Code = "NOT_FOUND"
	CodeBatchNotFound       Code = "BATCH_NOT_FOUND"
	CodeTemplateNotFound    Code = "TEMPLATE_NOT_FOUND"
	CodeNoteNotFound        Code = "NOTE_NOT_FOUND"
	CodeRatingNotFound      Code = "RATING_NOT_FOUND"
	CodeBatchArchived       Code = "BATCH_ARCHIVED"
	CodeBatchCompleted      Code = "BATCH_ALREADY_COMPLETED"
	CodeBatchNotCompleted   Code = "BATCH_NOT_COMPLETED"
	CodeFinalStage          Code = "FINAL_STAGE"
	CodeNoStagesFound       Code = "NO_STAGES_FOUND"
	CodeConflict            Code = "CONFLICT"
	CodeRateLimit           Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal            Code = "INTERNAL_SERVER_ERROR"
	CodeDependency          Code = "DEPENDENCY_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeActionTooLong: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "action must not exceed 200 characters",
		DetailsAllowed: true,
	},
	CodeObservationsTooLong: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "observations must not exceed 200 characters",
		DetailsAllowed: true,
	},
	CodeInvalidTemplate: {
		HTTPStatus:    http.StatusBadRequest,
		Retryable:     false,
		PublicMessage: "template has no stages",
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		Retryable:     false,
		PublicMessage: "authentication required",
	},
	CodeInvalidAuthToken: {
		HTTPStatus:    http.StatusUnauthorized,
		Retryable:     false,
		PublicMessage: "invalid auth token",
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		Retryable:     false,
		PublicMessage: "access denied",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Retryable:     false,
		PublicMessage: "resource not found",
	},
	CodeBatchNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Retryable:     false,
		PublicMessage: "batch not found or you don't have access to it",
	},
	CodeTemplateNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Retryable:     false,
		PublicMessage: "template not found",
	},
	CodeNoteNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Retryable:     false,
		PublicMessage: "note not found or you don't have access to it",
	},
	CodeRatingNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Retryable:     false,
		PublicMessage: "rating not found",
	},
	CodeBatchArchived: {
		HTTPStatus:    http.StatusBadRequest,
		Retryable:     false,
		PublicMessage: "cannot modify an archived batch",
	},
	CodeBatchCompleted: {
		HTTPStatus:    http.StatusConflict,
		Retryable:     false,
		PublicMessage: "batch is already completed",
	},
	CodeBatchNotCompleted: {
		HTTPStatus:    http.StatusForbidden,
		Retryable:     false,
		PublicMessage: "batch must be archived to add a rating",
	},
	CodeFinalStage: {
		HTTPStatus:    http.StatusBadRequest,
		Retryable:     false,
		PublicMessage: "batch is already at the final stage",
	},
	CodeNoStagesFound: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     false,
		PublicMessage: "no stages found for this batch",
	},
	CodeConflict: {
		HTTPStatus:    http.StatusConflict,
		Retryable:     true,
		PublicMessage: "conflict detected",
	},
	CodeRateLimit: {
		HTTPStatus:    http.StatusTooManyRequests,
		Retryable:     false,
		PublicMessage: "rate limit exceeded",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
