package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vacstats/internal/client/session"
	"github.com/dmitrijs2005/vacstats/internal/logging"
)

// RequestInterceptor mutates an outbound request before it hits the wire.
// Interceptors are total: they may annotate or skip, but never fail the call.
type RequestInterceptor func(r *http.Request)

// ResponseInterceptor observes or transforms the outcome of a call. It
// receives the original request, the response (nil when none was received),
// the drained body, and the error produced so far, and returns the error to
// carry forward.
type ResponseInterceptor func(req *http.Request, resp *http.Response, body []byte, err error) error

// RequestID stamps every request with a fresh X-Request-Id so client and
// server logs can be correlated.
func RequestID() RequestInterceptor {
	return func(r *http.Request) {
		r.Header.Set("X-Request-Id", uuid.NewString())
	}
}

// BearerToken attaches the persisted token, when one exists, as an
// Authorization header. The token is read from the store on every call
// rather than from the session manager's memory, so requests issued before
// the manager finishes hydrating still carry credentials. Store read
// failures leave the request unauthenticated; the server's 401 then drives
// the usual session-expiry path.
func BearerToken(store session.Store, log logging.Logger) RequestInterceptor {
	return func(r *http.Request) {
		token, err := store.Get(r.Context(), session.KeyToken)
		if err != nil {
			log.Warn(r.Context(), "could not read token from session store", "error", err)
			return
		}
		if len(token) > 0 {
			r.Header.Set("Authorization", "Bearer "+string(token))
		}
	}
}

// TraceRequest logs outbound calls at debug level.
func TraceRequest(log logging.Logger) RequestInterceptor {
	return func(r *http.Request) {
		log.Debug(r.Context(), "api request",
			"method", r.Method,
			"url", r.URL.String(),
			"request_id", r.Header.Get("X-Request-Id"),
		)
	}
}

// Normalize converts transport failures and non-2xx statuses into *Error.
// Successful responses pass through untouched.
func Normalize() ResponseInterceptor {
	return func(req *http.Request, resp *http.Response, body []byte, err error) error {
		if ae := classify(resp, body, err); ae != nil {
			return ae
		}
		return nil
	}
}

// TraceResponse logs call outcomes at debug level.
func TraceResponse(log logging.Logger) ResponseInterceptor {
	return func(req *http.Request, resp *http.Response, body []byte, err error) error {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		if err != nil {
			log.Debug(req.Context(), "api response", "url", req.URL.String(), "status", status, "error", err)
		} else {
			log.Debug(req.Context(), "api response", "url", req.URL.String(), "status", status)
		}
		return err
	}
}
