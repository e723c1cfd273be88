package errors

import "net/http"

// ErrorCode identifies a specific failure category.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeUnavailable    ErrorCode = "COMMON_004"
	ErrCodeNotImplemented ErrorCode = "COMMON_005"
)

// Analysis error codes.
const (
	// ErrCodeEmptyInput is returned when an analysis request carries no text.
	ErrCodeEmptyInput ErrorCode = "ANL_001"
)

// Content-routing error codes.
const (
	// ErrCodeNoFilePart is returned when a file upload is missing entirely.
	ErrCodeNoFilePart ErrorCode = "ROUTE_001"
	// ErrCodeOCRUnavailable is returned for image payloads when no optical
	// recognition engine is installed.
	ErrCodeOCRUnavailable ErrorCode = "ROUTE_002"
	// ErrCodeNoReadableText is returned when no routing path could produce a
	// non-empty text representation of the payload.
	ErrCodeNoReadableText ErrorCode = "ROUTE_003"
)

// Classification error codes. These are internal: inference failures are
// always recovered by the rule-based fallback and never reach API callers.
const (
	ErrCodeInferenceFailure ErrorCode = "CLS_001"
	ErrCodeModelNotTrained  ErrorCode = "CLS_002"
)

// CodeOK is the sentinel code for "no error".
const CodeOK = ErrorCode("OK")

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:       http.StatusInternalServerError,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeUnavailable:    http.StatusServiceUnavailable,
	ErrCodeNotImplemented: http.StatusNotImplemented,

	ErrCodeEmptyInput:     http.StatusBadRequest,
	ErrCodeNoFilePart:     http.StatusBadRequest,
	ErrCodeOCRUnavailable: http.StatusBadRequest,
	ErrCodeNoReadableText: http.StatusBadRequest,

	ErrCodeInferenceFailure: http.StatusInternalServerError,
	ErrCodeModelNotTrained:  http.StatusInternalServerError,
}

// errorCodeMessage maps ErrorCodes to default messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal server error",
	ErrCodeBadRequest:     "bad request",
	ErrCodeNotFound:       "resource not found",
	ErrCodeUnavailable:    "service unavailable",
	ErrCodeNotImplemented: "not implemented",

	ErrCodeEmptyInput:     "no text provided",
	ErrCodeNoFilePart:     "no file part",
	ErrCodeOCRUnavailable: "OCR not available",
	ErrCodeNoReadableText: "no readable text found in file",

	ErrCodeInferenceFailure: "classifier inference failed",
	ErrCodeModelNotTrained:  "no trained model available",
}

// HTTPStatusForCode returns the HTTP status for an ErrorCode, defaulting to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError reports whether code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}
