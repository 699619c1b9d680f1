package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
)

// ParseQueryString returns the trimmed query value, capped at maxLen bytes.
func ParseQueryString(r *http.Request, key string, maxLen int) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if maxLen > 0 && len(raw) > maxLen {
		return raw[:maxLen]
	}
	return raw
}

// RequirePathID returns the id path segment, rejecting blanks.
func RequirePathID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "id is required").WithDetails(map[string]any{"field": "id"})
	}
	return trimmed, nil
}
