package api

import (
	"io"
	"net/http"
	"sync/atomic"
)

// authTransport is the single interceptor shared by the REST and
// GraphQL clients. It attaches the bearer token to every outbound
// request and, on any 401 response, fires the registered teardown hook
// so session invalidation never depends on individual call sites.
type authTransport struct {
	base http.RoundTripper

	token        atomic.Pointer[func() string]
	unauthorized atomic.Pointer[func()]
}

func newAuthTransport(base http.RoundTripper) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base}
}

// setTokenSource registers the function consulted for the current
// bearer token. An empty return means no Authorization header is sent.
func (t *authTransport) setTokenSource(fn func() string) {
	t.token.Store(&fn)
}

// setUnauthorizedHook registers the callback fired once per 401 response.
func (t *authTransport) setUnauthorizedHook(fn func()) {
	t.unauthorized.Store(&fn)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if fn := t.token.Load(); fn != nil {
		if token := (*fn)(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if fn := t.unauthorized.Load(); fn != nil {
			(*fn)()
		}
		return nil, ErrUnauthorized
	}

	return resp, nil
}
