package apierror

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error that knows its HTTP status. Handlers convert
// every service failure through here; nothing propagates unhandled.
type Error struct {
	Code    string
	Status  int
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string, details ...FieldError) *Error {
	return &Error{Code: "ValidationFailed", Status: http.StatusBadRequest, Message: message, Details: details}
}

func Duplicate(message string) *Error {
	return &Error{Code: "DuplicateKey", Status: http.StatusBadRequest, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Code: "Unauthenticated", Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: "Forbidden", Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: "NotFound", Status: http.StatusNotFound, Message: message}
}

func InvalidStateTransition(message string) *Error {
	return &Error{Code: "InvalidStateTransition", Status: http.StatusBadRequest, Message: message}
}

func RegistrationClosed() *Error {
	return &Error{Code: "RegistrationClosed", Status: http.StatusBadRequest, Message: "registration is closed"}
}

func TournamentFull() *Error {
	return &Error{Code: "TournamentFull", Status: http.StatusBadRequest, Message: "tournament is full"}
}

func SoloRegistrationNotAllowed() *Error {
	return &Error{Code: "SoloRegistrationNotAllowed", Status: http.StatusBadRequest, Message: "solo registration is not allowed for this tournament"}
}

func Internal(err error) *Error {
	message := "internal server error"
	if development() && err != nil {
		message = err.Error()
	}
	return &Error{Code: "InternalError", Status: http.StatusInternalServerError, Message: message}
}

// IsNotFound reports whether err carries the NotFound taxonomy entry.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == "NotFound"
}

// FromBinding converts gin binding failures into the validation shape,
// with one detail per failed field constraint.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: "failed on the '" + fe.Tag() + "' constraint",
			})
		}
		return Validation("validation failed", details...)
	}
	return Validation(err.Error())
}

// From normalizes any error into an *Error, treating unknown errors as
// internal so their messages stay hidden in production.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// JSON writes the error envelope and aborts the request. Field details are
// only exposed outside production mode.
func JSON(c *gin.Context, err error) {
	apiErr := From(err)
	body := gin.H{"success": false, "error": apiErr.Message}
	if len(apiErr.Details) > 0 && development() {
		body["details"] = apiErr.Details
	}
	c.AbortWithStatusJSON(apiErr.Status, body)
}

func development() bool {
	return os.Getenv("APP_ENV") != "production"
}
