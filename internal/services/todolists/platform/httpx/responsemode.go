package httpx

import (
	"fmt"
	"net/http"
	"strings"
)

// ResponseMode decides whether a completed mutation answers with a redirect
// or an empty status for asynchronous clients.
type ResponseMode string

const (
	// ResponseModeDetect answers 204 to requests marked as asynchronous.
	ResponseModeDetect ResponseMode = "detect"
	// ResponseModeRedirect always redirects.
	ResponseModeRedirect ResponseMode = "redirect"
)

// ParseResponseMode validates a configured mode. Blank means detect.
func ParseResponseMode(raw string) (ResponseMode, error) {
	switch mode := ResponseMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ResponseModeDetect, nil
	case ResponseModeDetect, ResponseModeRedirect:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown response mode %q", raw)
	}
}

// IsAsyncRequest reports whether r was sent by script rather than a form
// navigation.
func IsAsyncRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return IsHTMXRequest(r)
}

// WantsEmptyResponse reports whether a destructive mutation should answer
// with 204 instead of redirecting.
func (m ResponseMode) WantsEmptyResponse(r *http.Request) bool {
	if m == ResponseModeRedirect {
		return false
	}
	return IsAsyncRequest(r)
}
