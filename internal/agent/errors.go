package agent

import (
	"errors"
	"fmt"
)

const (
	StageTransport      = "transport"
	StageResponseFormat = "response_format"
)

// TransportError is returned when the completion request fails or the
// endpoint answers with a non-success status.
type TransportError struct {
	Agent      string
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("agent %s: request failed: %v", e.Agent, e.Err)
	}
	return fmt.Sprintf("agent %s: endpoint returned %d: %s", e.Agent, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError is returned when the endpoint answered but the body has
// no choices[0].message.content.
type ResponseFormatError struct {
	Agent string
	Body  string
	Err   error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent %s: unexpected response format: %v", e.Agent, e.Err)
	}
	return fmt.Sprintf("agent %s: unexpected response format: %s", e.Agent, e.Body)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// Stage returns the pipeline stage of the first agent error in err's chain,
// or "" when there is none.
func Stage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return StageTransport
	}
	var rf *ResponseFormatError
	if errors.As(err, &rf) {
		return StageResponseFormat
	}
	return ""
}
