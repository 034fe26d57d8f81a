package posapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrUnauthenticated is returned before any request when the token is empty.
var ErrUnauthenticated = errors.New("not authenticated: no session token")

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := e.Message()
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, msg)
}

// Message is the backend's own explanation when the body carries one.
func (e *HTTPError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ""
	}
	if gjson.Valid(body) {
		for _, key := range []string{"message", "mensaje", "error", "detail"} {
			if v := gjson.Get(body, key); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
		return ""
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return body
}

// TransportError covers connectivity, timeouts and payloads that could not
// be encoded or decoded.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status carried by err, 0 when there is none.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

func IsForbidden(err error) bool {
	code := StatusCode(err)
	return code == http.StatusForbidden || code == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
