package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docvault/internal/config"
)

// ParseJSON decodes the request body into dest. The body is capped at
// MaxJSONBodyBytes; MaxBytesReader needs the writer so an oversized
// body produces a proper 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxJSONBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
