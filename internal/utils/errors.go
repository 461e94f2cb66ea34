package utils

import "github.com/gofiber/fiber/v2"

// ErrorCode is the machine-readable identifier carried by every error
// response envelope.
type ErrorCode string

const (
	CodeSuccess ErrorCode = "Success"

	CodeValidationError          ErrorCode = "ValidationError"
	CodeInvalidURL               ErrorCode = "InvalidUrlError"
	CodeURLNotUnique             ErrorCode = "UrlNotUniqueError"
	CodeScoreboardHidden         ErrorCode = "ScoreboardHiddenBadRequestError"
	CodeProblemSetNotFound       ErrorCode = "ProblemSetNotFoundError"
	CodeProblemSetBeforeAvTime   ErrorCode = "ProblemSetBeforeAvailableError"
	CodeProblemSetAfterDue       ErrorCode = "ProblemSetAfterDueError"
	CodeDomainNotFound           ErrorCode = "DomainNotFoundError"
	CodeDomainUserNotFound       ErrorCode = "DomainUserNotFoundError"
	CodeUnauthorized             ErrorCode = "UnauthorizedError"
	CodePermissionDenied         ErrorCode = "PermissionDeniedError"
	CodeTooManyRequests          ErrorCode = "TooManyRequestsError"
	CodeInternalServerError      ErrorCode = "InternalServerError"
	CodeAPINotImplementedError   ErrorCode = "ApiNotImplementedError"
)

// HTTPStatus maps an error code to the HTTP status its envelope travels with.
func (code ErrorCode) HTTPStatus() int {
	switch code {
	case CodeSuccess:
		return fiber.StatusOK
	case CodeValidationError, CodeInvalidURL, CodeURLNotUnique, CodeScoreboardHidden,
		CodeProblemSetBeforeAvTime, CodeProblemSetAfterDue:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodePermissionDenied:
		return fiber.StatusForbidden
	case CodeTooManyRequests:
		return fiber.StatusTooManyRequests
	case CodeProblemSetNotFound, CodeDomainNotFound, CodeDomainUserNotFound:
		return fiber.StatusNotFound
	case CodeAPINotImplementedError:
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

// BizError is a business-rule violation carrying a machine-readable code.
// Infrastructure failures stay plain errors and surface as 500s.
type BizError struct {
	Code    ErrorCode
	Message string
}

// NewBizError builds a business error for the given code.
func NewBizError(code ErrorCode, message string) *BizError {
	return &BizError{Code: code, Message: message}
}

func (e *BizError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}
