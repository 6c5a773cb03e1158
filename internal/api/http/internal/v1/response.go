package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    ValidationErrorCode,
			ErrorMessage: ValidationErrorMessage,
		}
		response.Errors = out
		c.AbortWithStatusJSON(http.StatusBadRequest, response)
		return
	}

	// malformed json never reaches the validator
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: err.Error(),
		Errors:       []ValidationError{},
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Must contain at least %v items", value)
	case "dsraction":
		return InvalidActionMessage
	}
	return tag
}

// failedResponse maps a datapoint or integration failure onto a status and code.
func failedResponse(c *gin.Context, err error) {
	var (
		httpErr    *mailgun.HTTPError
		respErr    *mailgun.ResponseError
		netErr     *mailgun.NetworkError
		clientErr  *mailgun.ClientError
		errorBody  *ErrorStruct
		statusCode int
	)

	switch {
	case errors.As(err, &httpErr):
		statusCode, errorBody = http.StatusBadGateway, getErrorStruct(ProviderRejectedCode)
		errorBody.Detail = fmt.Sprintf("%d %s: %s", httpErr.StatusCode, httpErr.StatusText, httpErr.Message)
	case errors.As(err, &respErr):
		statusCode, errorBody = http.StatusBadGateway, getErrorStruct(ProviderBadResponseCode)
		errorBody.Detail = respErr.Reason
	case errors.As(err, &netErr):
		statusCode, errorBody = http.StatusGatewayTimeout, getErrorStruct(ProviderUnreachableCode)
	case errors.As(err, &clientErr):
		statusCode, errorBody = http.StatusInternalServerError, getErrorStruct(ProviderRequestFailedCode)
	case errors.Is(err, domain.ErrInvalidAction):
		statusCode, errorBody = http.StatusBadRequest, getErrorStruct(InvalidActionCode)
	case errors.Is(err, domain.ErrInvalidIdentifier):
		statusCode, errorBody = http.StatusBadRequest, getErrorStruct(InvalidIdentifierCode)
	default:
		statusCode, errorBody = http.StatusInternalServerError, getErrorStruct(UnknownErrorCode)
	}

	logger.Error("request failed", zap.Error(err), zap.Int("status", statusCode))
	c.AbortWithStatusJSON(statusCode, errorBody)
}
