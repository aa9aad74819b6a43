package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Upstream is a fake source site. The handler can be swapped between calls.
type Upstream struct {
	*httptest.Server

	mu       sync.RWMutex
	handler  http.Handler
	calls    atomic.Int64
	requests []*http.Request
}

// NewUpstream starts an upstream serving h and closes it when the test ends.
func NewUpstream(t *testing.T, h http.Handler) *Upstream {
	t.Helper()
	u := &Upstream{handler: h}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.calls.Add(1)

	u.mu.Lock()
	u.requests = append(u.requests, r.Clone(r.Context()))
	h := u.handler
	u.mu.Unlock()

	h.ServeHTTP(w, r)
}

// Handle replaces the handler.
func (u *Upstream) Handle(h http.Handler) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handler = h
}

// Calls returns how many requests reached the upstream.
func (u *Upstream) Calls() int {
	return int(u.calls.Load())
}

// LastRequest returns the most recent request, or nil.
func (u *Upstream) LastRequest() *http.Request {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if len(u.requests) == 0 {
		return nil
	}
	return u.requests[len(u.requests)-1]
}

// Body answers with status and body under contentType.
func Body(status int, contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}

// JSON answers 200 with a JSON body.
func JSON(body []byte) http.Handler {
	return Body(http.StatusOK, "application/json", body)
}

// HTML answers 200 with an HTML page.
func HTML(page string) http.Handler {
	return Body(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Status answers with an empty body and the given status.
func Status(code int) http.Handler {
	return Body(code, "text/plain", nil)
}

// Delayed waits d, or until the client goes away, before calling h.
func Delayed(d time.Duration, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(d):
			h.ServeHTTP(w, r)
		case <-r.Context().Done():
		}
	})
}
