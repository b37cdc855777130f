package restapi

import (
	"bytes"
	"encoding/json"
)

// ExtractData unwraps REST responses that envelope their payload under a
// "data" field. If no such field exists the original body is returned, so
// callers can consume both enveloped and plain JSON APIs.
func ExtractData(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Data == nil {
		// Body is either not an object or does not include a data field.
		return append([]byte(nil), trimmed...)
	}
	return append([]byte(nil), envelope.Data...)
}

// ErrorMessage pulls the message out of a JSON error body of the form
// {"error": "..."}. When the body does not follow that convention the raw
// body is returned as-is.
func ErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(trimmed)
}
