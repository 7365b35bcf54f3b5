package apierrors

import (
	"fmt"
	"net/http"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Build an *Error at the point where a failure condition is recognized
//     and return it up the call chain; Respond() turns it into the envelope
//   - Use logger.ErrorErr() only for non-critical errors where processing
//     continues (archiving, usage recording)
//
// For services/clients:
//   - Return an *Error for conditions in the taxonomy below
//   - Return wrapped errors with fmt.Errorf("context: %w", err) for anything
//     unanticipated; Respond() converts those to a generic internal_error
//     without leaking detail to the caller

// stable machine-readable error codes
const (
	CodeValidationError         = "validation_error"
	CodeUnauthenticated         = "unauthenticated"
	CodeQuotaExceeded           = "quota_exceeded"
	CodeRateLimited             = "rate_limited"
	CodeServiceUnavailable      = "service_unavailable"
	CodeServiceAuthFailed       = "service_auth_failed"
	CodeServiceBusy             = "service_busy"
	CodeGenerationFailed        = "generation_failed"
	CodeGenerationTimeout       = "generation_timeout"
	CodeUploadFailed            = "upload_failed"
	CodeImageTooLarge           = "image_too_large"
	CodeInvalidFileType         = "invalid_file_type"
	CodeInvalidSource           = "invalid_source"
	CodeDownloadTimeout         = "download_timeout"
	CodeFetchFailed             = "fetch_failed"
	CodeSubscriptionUnavailable = "subscription_unavailable"
	CodeInternalError           = "internal_error"
)

// a typed error carrying a stable code, a user-facing message, and the
// HTTP status it maps to
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func Validation(message string) *Error {
	if message == "" {
		message = "validation failed"
	}

	return New(CodeValidationError, message, http.StatusBadRequest)
}

func Unauthenticated(message string) *Error {
	if message == "" {
		message = "authentication required, please sign in"
	}

	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

// carries the plan name and limit so the client can render an upgrade prompt
func QuotaExceeded(plan string, limit int) *Error {
	message := fmt.Sprintf(
		"daily generation limit reached for plan %s (limit: %d). Upgrade your subscription for more generations.",
		plan, limit,
	)

	return New(CodeQuotaExceeded, message, http.StatusTooManyRequests)
}

func RateLimited() *Error {
	return New(CodeRateLimited, "too many requests, please try again later", http.StatusTooManyRequests)
}

func ServiceUnavailable(message string) *Error {
	if message == "" {
		message = "generation service unavailable"
	}

	return New(CodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

func ServiceAuthFailed() *Error {
	return New(CodeServiceAuthFailed, "service authentication failed", http.StatusServiceUnavailable)
}

func ServiceBusy() *Error {
	return New(CodeServiceBusy, "service busy, please try again later", http.StatusTooManyRequests)
}

func GenerationFailed() *Error {
	return New(CodeGenerationFailed, "image generation failed", http.StatusInternalServerError)
}

func GenerationTimeout() *Error {
	return New(CodeGenerationTimeout, "generation timeout, please try again", http.StatusRequestTimeout)
}

func UploadFailed() *Error {
	return New(CodeUploadFailed, "failed to upload image", http.StatusInternalServerError)
}

func ImageTooLarge(status int) *Error {
	return New(CodeImageTooLarge, "image too large", status)
}

func InvalidFileType() *Error {
	return New(CodeInvalidFileType, "invalid file type", http.StatusBadRequest)
}

func InvalidSource() *Error {
	return New(CodeInvalidSource, "invalid image source", http.StatusBadRequest)
}

func DownloadTimeout() *Error {
	return New(CodeDownloadTimeout, "download timeout", http.StatusRequestTimeout)
}

func FetchFailed() *Error {
	return New(CodeFetchFailed, "failed to fetch image", http.StatusBadGateway)
}

func SubscriptionUnavailable() *Error {
	return New(CodeSubscriptionUnavailable, "unable to fetch subscription info", http.StatusInternalServerError)
}

func Internal(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}

	return New(CodeInternalError, message, http.StatusInternalServerError)
}
