//go:build integration

package mock

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

type cannedResponse struct {
	status int
	body   string
}

// Upstream is a programmable stand-in for third-party HTTP APIs. Paths
// without a canned response answer 404.
type Upstream struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]cannedResponse
	hits      map[string]int
}

// NewUpstream starts the stub server.
func NewUpstream() *Upstream {
	u := &Upstream{
		responses: map[string]cannedResponse{},
		hits:      map[string]int{},
	}
	u.server = httptest.NewServer(http.HandlerFunc(u.serve))
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	u.mu.Lock()
	u.hits[key]++
	resp, ok := u.responses[key]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

// URL returns the stub's base URL.
func (u *Upstream) URL() string {
	return u.server.URL
}

// SetResponse makes method+path answer with status and a raw body.
func (u *Upstream) SetResponse(method, path string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.responses[method+path] = cannedResponse{status: status, body: body}
}

// Hits returns how many requests method+path received.
func (u *Upstream) Hits(method, path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[method+path]
}

// Reset forgets canned responses and hit counts.
func (u *Upstream) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.responses = map[string]cannedResponse{}
	u.hits = map[string]int{}
}

// Close stops the stub server.
func (u *Upstream) Close() {
	u.server.Close()
}
