// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup queries external bibliographic databases (CrossRef and
// PubMed) and normalizes their response shapes into ExternalRecords.
//
// The transport discipline is deliberate: every request carries a polite
// User-Agent and a mailto parameter, requests are rate limited, 429 and 5xx
// responses are retried with exponential backoff, and any unrecoverable
// failure degrades to "not found" so one citation's lookup can never abort
// the run.
package lookup

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/bibverify/pkg/types"
)

const defaultRequestsPerSecond = 2.0

// Client is a rate-limited client for the external bibliographic databases.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        types.LookupConfig
}

// NewClient builds a lookup client from config. The HTTP timeout from the
// config applies to every request, including retries of a single call.
func NewClient(cfg types.LookupConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cfg:        cfg,
	}
}

// wait blocks until the rate limiter admits the next request. A context
// error here is treated like any other transport failure by the callers.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}
