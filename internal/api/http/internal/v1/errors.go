package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidActionCode        = 1001
	InvalidActionMessage     = "action must be one of ACCESS, ERASURE, SEED"
	InvalidIdentifierCode    = 1002
	InvalidIdentifierMessage = "identifier must be an email address"

	ProviderRejectedCode         = 2001
	ProviderRejectedMessage      = "mailgun rejected the request"
	ProviderBadResponseCode      = 2002
	ProviderBadResponseMessage   = "mailgun returned an unexpected response"
	ProviderUnreachableCode      = 2003
	ProviderUnreachableMessage   = "mailgun did not respond"
	ProviderRequestFailedCode    = 2004
	ProviderRequestFailedMessage = "request to mailgun could not be made"

	QueueUnavailableCode    = 3001
	QueueUnavailableMessage = "request queue is not available"
	RequestNotFoundCode     = 3002
	RequestNotFoundMessage  = "request not found"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
	// Detail carries the provider's own message when there is one.
	Detail string `json:"detail,omitempty"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case InvalidActionCode:
		errorStruct.ErrorCode = InvalidActionCode
		errorStruct.ErrorMessage = InvalidActionMessage
	case InvalidIdentifierCode:
		errorStruct.ErrorCode = InvalidIdentifierCode
		errorStruct.ErrorMessage = InvalidIdentifierMessage
	case ProviderRejectedCode:
		errorStruct.ErrorCode = ProviderRejectedCode
		errorStruct.ErrorMessage = ProviderRejectedMessage
	case ProviderBadResponseCode:
		errorStruct.ErrorCode = ProviderBadResponseCode
		errorStruct.ErrorMessage = ProviderBadResponseMessage
	case ProviderUnreachableCode:
		errorStruct.ErrorCode = ProviderUnreachableCode
		errorStruct.ErrorMessage = ProviderUnreachableMessage
	case ProviderRequestFailedCode:
		errorStruct.ErrorCode = ProviderRequestFailedCode
		errorStruct.ErrorMessage = ProviderRequestFailedMessage
	case QueueUnavailableCode:
		errorStruct.ErrorCode = QueueUnavailableCode
		errorStruct.ErrorMessage = QueueUnavailableMessage
	case RequestNotFoundCode:
		errorStruct.ErrorCode = RequestNotFoundCode
		errorStruct.ErrorMessage = RequestNotFoundMessage
	}

	return errorStruct
}
