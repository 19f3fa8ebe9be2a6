package apiclient

import (
	"encoding/json"
	"net/http"
)

// FallbackMessage is used when no message can be extracted from a failure
const FallbackMessage = "An error occurred"

// Result is the normalized outcome every upstream call resolves to.
// Successful calls carry Data; failures carry Message, Errors and the HTTP
// status (500 when no response was received at all).
type Result struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  map[string]any  `json:"errors,omitempty"`

	noResponse bool
}

// Decode unmarshals the success payload into v
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}

// IsNetworkError reports that no response reached the portal at all
func (r *Result) IsNetworkError() bool {
	return r.noResponse
}

// IsServerError reports a 5xx response
func (r *Result) IsServerError() bool {
	return !r.noResponse && r.Status >= http.StatusInternalServerError
}

// IsClientError reports a 4xx response
func (r *Result) IsClientError() bool {
	return r.Status >= http.StatusBadRequest && r.Status < http.StatusInternalServerError
}

func successResult(status int, body []byte) *Result {
	return &Result{Success: true, Status: status, Data: body}
}

func networkFailure(err error) *Result {
	msg := FallbackMessage
	if err != nil {
		msg = err.Error()
	}
	return &Result{
		Success:    false,
		Status:     http.StatusInternalServerError,
		Message:    msg,
		noResponse: true,
	}
}

// ExtractError turns a failed response body into a message and a structured
// error map. Message precedence: string body, "error" field, "message"
// field, "detail" field, then the fallback. The "errors" field becomes the
// error map; if no known message field matched an object body, the whole
// body does.
func ExtractError(status int, body []byte) *Result {
	res := &Result{Success: false, Status: status, Message: FallbackMessage}
	if len(body) == 0 {
		return res
	}

	// Plain string body
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		if s != "" {
			res.Message = s
		}
		return res
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return res
	}

	matched := false
	for _, field := range []string{"error", "message", "detail"} {
		if v, ok := obj[field].(string); ok && v != "" {
			res.Message = v
			matched = true
			break
		}
	}

	if errs, ok := obj["errors"].(map[string]any); ok {
		res.Errors = errs
	} else if !matched {
		res.Errors = obj
	}
	return res
}
