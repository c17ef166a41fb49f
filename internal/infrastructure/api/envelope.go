package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tambesec/networkstore/domain"
)

// decodeEnvelope unwraps a success payload. The backend wraps most responses
// as { "data": T } but some endpoints return bare T; consumers must not care
// which.
func decodeEnvelope(raw []byte, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err == nil {
			return nil
		}
	}
	return json.Unmarshal(raw, out)
}

// decodeAPIError extracts the backend's error envelope. The message field
// may be a string or a list of validation messages; lists are joined for
// display.
func decodeAPIError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status}

	var env struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		apiErr.Message = decodeMessage(env.Message)
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, ", ")
	}
	return ""
}
