package graphql

import (
	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
)

const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeUnauthenticated     = "UNAUTHENTICATED"
)

// ResolverError is reported in the errors list with extensions.code set.
type ResolverError struct {
	Code    string
	Message string
}

func (e *ResolverError) Error() string {
	return e.Message
}

func (e *ResolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
	}
}

func codeFromErrorType(errorType model.ErrorType) string {
	switch errorType {
	case model.ErrorTypeBadRequest:
		return CodeBadRequest
	case model.ErrorTypeNotFound:
		return CodeNotFound
	default:
		return CodeInternalServerError
	}
}

func faultError(fault *model.Fault) *ResolverError {
	return &ResolverError{
		Code:    codeFromErrorType(fault.ErrorType),
		Message: fault.ErrorMessage,
	}
}

func problemError() *ResolverError {
	return &ResolverError{
		Code:    CodeInternalServerError,
		Message: constant.MSG_PROBLEM,
	}
}
