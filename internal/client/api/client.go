package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/machinebox/graphql"

	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

// HTTPClient implements Client over the two real backend protocols.
// Both protocols share one underlying http.Client so the bearer/401
// transport covers every outbound call.
type HTTPClient struct {
	rest      *resty.Client
	gql       *graphql.Client
	transport *authTransport
	httpc     *http.Client
	cache     jobCache
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given REST and GraphQL
// endpoints. The timeout applies to every request on both protocols.
func NewHTTPClient(restBaseURL, graphqlURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	transport := newAuthTransport(nil)
	httpc := &http.Client{Transport: transport, Timeout: timeout}

	rest := resty.NewWithClient(httpc).
		SetBaseURL(restBaseURL).
		SetHeader("Content-Type", "application/json")

	gql := graphql.NewClient(graphqlURL, graphql.WithHTTPClient(httpc))

	return &HTTPClient{
		rest:      rest,
		gql:       gql,
		transport: transport,
		httpc:     httpc,
		log:       log,
	}
}

// SetTokenSource wires the current-token provider (the session store)
// into the shared transport.
func (c *HTTPClient) SetTokenSource(fn func() string) {
	c.transport.setTokenSource(fn)
}

// SetUnauthorizedHook wires the session teardown callback fired on any
// 401 response, independent of the calling component.
func (c *HTTPClient) SetUnauthorizedHook(fn func()) {
	c.transport.setUnauthorizedHook(fn)
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// mapTransportError classifies errors raised below the protocol layer.
func (c *HTTPClient) mapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// mapGraphQLError classifies errors returned by the GraphQL client:
// transport failures become ErrUnavailable, 401s surface as
// ErrUnauthorized, and server-reported errors keep their message.
func (c *HTTPClient) mapGraphQLError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) {
		return ErrUnauthorized
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	msg := strings.TrimPrefix(err.Error(), "graphql: ")
	if strings.Contains(strings.ToLower(msg), "not found") {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return &DomainError{Message: msg}
}
