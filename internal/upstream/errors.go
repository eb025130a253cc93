package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure for error reporting.
type Kind int

const (
	// KindInvalidInput marks errors the client can correct (HTTP 400, 404, 412).
	KindInvalidInput Kind = iota + 1
	// KindUpstreamFailure marks every other non-2xx or transport failure.
	KindUpstreamFailure
)

// Error is returned for any failed upstream call. The upstream body is kept
// for diagnostics but only invalid-input messages are echoed to clients.
type Error struct {
	Status  int
	Kind    Kind
	Message string
	Body    []byte
	URL     string
}

func (e *Error) Error() string {
	if e.Kind == KindInvalidInput {
		return e.Message
	}
	// Opaque to callers; details are logged by the client.
	return "upstream request failed"
}

// Extensions surfaces the error classification through the GraphQL response.
func (e *Error) Extensions() map[string]interface{} {
	code := "UPSTREAM_ERROR"
	if e.Kind == KindInvalidInput {
		code = "BAD_USER_INPUT"
	}
	ext := map[string]interface{}{"code": code}
	if e.Status != 0 {
		ext["upstreamStatus"] = e.Status
	}
	return ext
}

// newStatusError builds an Error from a non-2xx upstream response. WordPress
// error bodies carry a "message" field; fall back to the status text.
func newStatusError(status int, body []byte, url string) *Error {
	msg := http.StatusText(status)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}

	kind := KindUpstreamFailure
	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusPreconditionFailed:
		kind = KindInvalidInput
	}

	return &Error{Status: status, Kind: kind, Message: msg, Body: body, URL: url}
}

func newTransportError(url string, err error) *Error {
	return &Error{
		Kind:    KindUpstreamFailure,
		Message: fmt.Sprintf("transport failure: %v", err),
		URL:     url,
	}
}
