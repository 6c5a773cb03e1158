package mailgun

import "fmt"

// HTTPError: the request reached Mailgun and got a non-2xx status.
type HTTPError struct {
	StatusCode int
	StatusText string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("mailgun api error: %d %s: %s", e.StatusCode, e.StatusText, e.Message)
	}
	return fmt.Sprintf("mailgun api error: %d %s", e.StatusCode, e.StatusText)
}

// NetworkError: the request was sent but no response arrived.
type NetworkError struct {
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	return "mailgun api request error: " + e.Detail
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClientError: the request could not be built or sent.
type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	return "mailgun client error: " + e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// ResponseError: a 2xx response whose body does not have the expected shape.
// Payload keeps the raw body for diagnostics.
type ResponseError struct {
	Reason  string
	Payload []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response from mailgun api: %s: %s", e.Reason, e.Payload)
}
