package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Result is the uniform outcome of a commerce API call.
// Callers branch on Success, never on StatusCode.
type Result struct {
	// Success mirrors the envelope's success flag (or a 2xx status when the body carries no envelope).
	Success bool
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Data is the raw envelope payload.
	Data json.RawMessage
	// Err describes the failure when Success is false.
	Err *Error
}

// Decode unmarshals the payload into v.
func (r *Result) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return fmt.Errorf("decode commerce api payload: empty data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode commerce api payload: %w", err)
	}
	return nil
}

// AsError returns Err as an error, or nil on success.
func (r *Result) AsError() error {
	if r.Success || r.Err == nil {
		return nil
	}
	return r.Err
}

func failure(kind Kind, status int, message string) *Result {
	return &Result{
		StatusCode: status,
		Err:        &Error{Kind: kind, Status: status, Message: message},
	}
}

// parseEnvelope normalizes a response body into a Result.
// Accepted shapes: {"success":bool,"data":...,"error"|"message":...} or any bare JSON payload.
func parseEnvelope(status int, body []byte) *Result {
	ok2xx := status >= 200 && status < 300

	if len(body) == 0 {
		if ok2xx {
			return &Result{Success: true, StatusCode: status}
		}
		return failure(kindForStatus(status), status, http.StatusText(status))
	}

	if !gjson.ValidBytes(body) {
		if ok2xx {
			return failure(KindServer, status, "invalid response body")
		}
		return failure(kindForStatus(status), status, http.StatusText(status))
	}

	parsed := gjson.ParseBytes(body)
	success := ok2xx
	data := json.RawMessage(body)

	if flag := parsed.Get("success"); flag.Exists() && parsed.IsObject() {
		success = ok2xx && flag.Bool()
		data = nil
		if d := parsed.Get("data"); d.Exists() {
			data = json.RawMessage(d.Raw)
		}
	}

	if success {
		return &Result{Success: true, StatusCode: status, Data: data}
	}

	kind := kindForStatus(status)
	if ok2xx {
		kind = KindRejected
	}

	res := failure(kind, status, errorMessage(parsed, status))
	res.Data = data
	return res
}

// errorMessage digs the most specific human-readable message out of an error body.
func errorMessage(body gjson.Result, status int) string {
	for _, path := range []string{"error.message", "error", "message", "errors.0.message", "errors.0", "data.message"} {
		v := body.Get(path)
		if v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
