package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrUnavailable is returned by Health when the server answers but does not
// report a healthy status.
var ErrUnavailable = errors.New("server unavailable")

// Kind classifies a failed call into the buckets callers act on.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTimeout: the request exceeded the client timeout.
	KindTimeout
	// KindNetwork: no response was received at all.
	KindNetwork
	// KindUnauthorized: HTTP 401, session-ending.
	KindUnauthorized
	// KindForbidden: HTTP 403, the account lacks admin privileges.
	KindForbidden
	// KindNotFound: HTTP 404.
	KindNotFound
	// KindServer: HTTP 5xx.
	KindServer
	// KindValidation: client-side input rejection, never reached the network.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the normalized outcome of a failed call: a classification, the
// HTTP status when a response was received, the server's own error text when
// it sent one, and a message fit for direct display.
type Error struct {
	Kind          Kind
	Status        int
	ServerMessage string
	UserMessage   string
}

func (e *Error) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return "request failed"
}

// Is lets errors.Is match two api errors by kind, so callers can compare
// against e.g. &Error{Kind: KindUnauthorized}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the classification from err, KindUnknown when err is not
// an api error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// User-facing messages for each failure class. Matching what the dashboard
// has always shown keeps released help texts and screenshots valid.
const (
	msgTimeout      = "Request timeout. Please check your connection and try again."
	msgNetwork      = "Network error. Please check your connection and try again."
	msgUnauthorized = "Session expired. Please login again."
	msgForbidden    = "Access denied. Administrator privileges required."
	msgNotFound     = "Service not found. Please try again later."
	msgServer       = "Server error. Please try again later."
	msgGeneric      = "Request failed. Please try again later."
)

// serverErrorBody is the loosely structured error payload the backend sends.
type serverErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var b serverErrorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// classify normalizes a transport error or a non-2xx response into *Error.
// It returns nil for successful responses. The precedence is fixed:
// timeout, then no-response, then 401, 403, 404, 5xx, and only then the
// server-supplied text. A 401 always wins even when the body carries a
// message field.
func classify(resp *http.Response, body []byte, err error) *Error {
	if err != nil {
		if isTimeout(err) {
			return &Error{Kind: KindTimeout, UserMessage: msgTimeout}
		}
		return &Error{Kind: KindNetwork, UserMessage: msgNetwork}
	}
	if resp == nil {
		return &Error{Kind: KindNetwork, UserMessage: msgNetwork}
	}
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	e := &Error{Status: resp.StatusCode, ServerMessage: serverMessage(body)}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
		e.UserMessage = msgUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		e.Kind = KindForbidden
		e.UserMessage = msgForbidden
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = KindNotFound
		e.UserMessage = msgNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		e.Kind = KindServer
		e.UserMessage = msgServer
	default:
		e.Kind = KindUnknown
		if e.ServerMessage != "" {
			e.UserMessage = e.ServerMessage
		} else {
			e.UserMessage = msgGeneric
		}
	}
	return e
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// RefineLoginError sharpens the generic normalization for the login call.
// The backend returns loosely structured error strings, so this is
// best-effort substring matching; unmatched server text passes through
// unchanged. Errors that are not api errors are returned as-is.
func RefineLoginError(err error) error {
	var ae *Error
	if !errors.As(err, &ae) {
		return err
	}

	msg := ae.ServerMessage
	refined := ""
	switch {
	case strings.Contains(msg, "Invalid credentials"), strings.Contains(msg, "not found"):
		refined = "Invalid email or password. Please check your credentials."
	case msg == "" && ae.Kind == KindUnauthorized:
		// a bare 401 on the login call is a rejected credential, not an
		// expired session
		refined = "Invalid email or password. Please check your credentials."
	case strings.Contains(msg, "not an admin"):
		refined = "Access denied. Only administrators can access the dashboard."
	case strings.Contains(msg, "Email and password required"):
		refined = "Please enter both email and password."
	case msg != "":
		refined = msg
	}
	if refined == "" {
		return err
	}

	out := *ae
	out.UserMessage = refined
	return &out
}
