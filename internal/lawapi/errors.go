package lawapi

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey  = errors.New("LAW_API_KEY is not set: add LAW_API_KEY=<issued key> to the environment or [law_api] api_key to the config file (keys are issued at https://open.law.go.kr)")
	ErrUnknownLawType = errors.New("unknown law type")
)

// TransportError is a failed round trip to the law information service:
// dial or TLS failure, timeout, or a non-2xx status.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("law api request failed: %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("law api request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the response body was not a usable XML document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("law api response parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
