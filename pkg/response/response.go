package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data, Timestamp: now()})
}

func fail(c echo.Context, status int, info ErrorInfo) error {
	return c.JSON(status, Response{Success: false, Error: &info, Timestamp: now()})
}

func Success(c echo.Context, data interface{}) error {
	return ok(c, http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return ok(c, http.StatusCreated, data)
}

func Paginated(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return ok(c, http.StatusOK, PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Error writes err as an error envelope. Validation failures become
// VALIDATION_ERROR, AppErrors keep their code and status, and anything
// else is reported as INTERNAL_ERROR without leaking its message.
func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return validationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Path(), appErr)
		}
		return fail(c, apperrors.StatusOf(appErr), ErrorInfo{Code: appErr.Code, Message: appErr.Message})
	}

	// echo's Bind reports malformed bodies as HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		if message == "" {
			message = http.StatusText(httpErr.Code)
		}
		return fail(c, httpErr.Code, ErrorInfo{Code: apperrors.CodeBadRequest, Message: message})
	}

	logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
	return fail(c, http.StatusInternalServerError, ErrorInfo{
		Code:    apperrors.CodeInternal,
		Message: "An unexpected error occurred",
	})
}

func validationError(c echo.Context, validationErr validator.ValidationErrors) error {
	if len(validationErr) == 0 {
		return fail(c, http.StatusBadRequest, ErrorInfo{Code: apperrors.CodeValidation, Message: "Invalid input data"})
	}

	details := make([]FieldError, 0, len(validationErr))
	for _, fe := range validationErr {
		field := strings.ToLower(fe.Field())
		details = append(details, FieldError{Field: field, Message: fieldMessage(field, fe)})
	}
	return fail(c, http.StatusBadRequest, ErrorInfo{
		Code:    apperrors.CodeValidation,
		Message: details[0].Message,
		Details: details,
	})
}

func fieldMessage(field string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "len":
		return field + " must be exactly " + param + " characters"
	case "numeric":
		return field + " must contain digits only"
	case "oneof":
		return field + " must be one of: " + param
	case "email":
		return field + " must be a valid email address"
	default:
		return field + " is invalid"
	}
}
