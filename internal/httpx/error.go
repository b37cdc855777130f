package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Statekit/statekit_sdk_go/internal/restapi"
)

// HTTPError represents a non-2xx HTTP response returned by the remote service.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	JSON       any
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if msg := restapi.ErrorMessage(e.Body); msg != "" {
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, msg)
	}
	return fmt.Sprintf("http error: status=%d", e.StatusCode)
}

// decodeJSONBody parses the body bytes into a generic JSON payload.
func decodeJSONBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload
}
