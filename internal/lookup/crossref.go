// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/bibverify/internal/httputil"
	"github.com/pdiddy/bibverify/internal/textnorm"
	"github.com/pdiddy/bibverify/pkg/types"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// searchRows is the result count requested for ranked searches. Only the
// top result is consumed; the extra rows tolerate near-miss ranking.
const searchRows = 3

// ByDOI fetches a work directly by identifier. Any transport failure or
// non-2xx response yields (nil, false), never an error.
func (c *Client) ByDOI(ctx context.Context, doi string) (*types.ExternalRecord, bool) {
	reqURL := crossrefAPIBase + "/" + url.PathEscape(doi) + "?" + c.politeParams(url.Values{}).Encode()

	var body crossrefItemResponse
	if !c.getJSON(ctx, reqURL, &body) {
		return nil, false
	}
	rec := newRecord(body.Message)
	return &rec, true
}

// ByTitleAuthor runs a ranked search and takes the top result. CrossRef
// returns results most-relevant-first. Returns (nil, false) when nothing
// matches or the request fails.
func (c *Client) ByTitleAuthor(ctx context.Context, title, author string) (*types.ExternalRecord, bool) {
	params := url.Values{"rows": {strconv.Itoa(searchRows)}}
	if title != "" {
		params.Set("query.title", title)
	}
	if author != "" {
		params.Set("query.author", author)
	}

	reqURL := crossrefAPIBase + "?" + c.politeParams(params).Encode()

	var body crossrefSearchResponse
	if !c.getJSON(ctx, reqURL, &body) {
		return nil, false
	}
	if len(body.Message.Items) == 0 {
		return nil, false
	}
	rec := newRecord(body.Message.Items[0])
	return &rec, true
}

// politeParams adds the mailto contact parameter CrossRef uses to route
// traffic into its polite pool.
func (c *Client) politeParams(params url.Values) url.Values {
	if c.cfg.Email != "" {
		params.Set("mailto", c.cfg.Email)
	}
	return params
}

// getJSON performs a GET with retry/backoff and decodes the response.
// Every failure mode returns false.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	if err := c.wait(ctx); err != nil {
		return false
	}
	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}

// newRecord normalizes a CrossRef work into an ExternalRecord.
func newRecord(work crossrefWork) types.ExternalRecord {
	rec := types.ExternalRecord{
		DOI:  work.DOI,
		Year: resolveYear(work),
	}
	if len(work.Title) > 0 {
		rec.Title = work.Title[0]
	}
	for _, a := range work.Authors {
		rec.Authors = append(rec.Authors, types.AuthorName{
			Family: textnorm.Normalize(a.Family),
			Given:  textnorm.Normalize(a.Given),
		})
	}
	return rec
}

// resolveYear returns the first available year among the print, online,
// issued, and created date fields, in that order.
func resolveYear(work crossrefWork) string {
	for _, d := range []crossrefDate{work.PublishedPrint, work.PublishedOnline, work.Issued, work.Created} {
		if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
			return fmt.Sprintf("%d", d.DateParts[0][0])
		}
	}
	return ""
}

// CrossRef API JSON structures. Every field may be absent.
type crossrefItemResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefSearchResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI             string           `json:"DOI"`
	Title           []string         `json:"title"`
	Authors         []crossrefAuthor `json:"author"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
	Issued          crossrefDate     `json:"issued"`
	Created         crossrefDate     `json:"created"`
}

type crossrefAuthor struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
