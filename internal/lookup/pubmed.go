// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// pubmedAPIBase is the NCBI esearch endpoint. Declared as a var so tests
// can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// pubmedTool identifies this client to NCBI, as their usage policy asks.
const pubmedTool = "bibverify"

// Secondary checks PubMed for the existence of a work. The query uses a
// quoted title constrained by author for precision; only the result count
// is consumed. Any failure yields false.
func (c *Client) Secondary(ctx context.Context, title, author string) bool {
	term := fmt.Sprintf("%q[Title]", title)
	if author != "" {
		term += fmt.Sprintf(" AND %s[Author]", author)
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {"1"},
		"tool":    {pubmedTool},
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.NCBIAPIKey != "" {
		params.Set("api_key", c.cfg.NCBIAPIKey)
	}

	reqURL := pubmedAPIBase + "?" + params.Encode()

	var body pubmedResponse
	if !c.getJSON(ctx, reqURL, &body) {
		return false
	}

	// esearch reports the count as a JSON string.
	count, err := strconv.Atoi(body.ESearchResult.Count)
	if err != nil {
		return false
	}
	return count > 0
}

// PubMed esearch JSON structure.
type pubmedResponse struct {
	ESearchResult struct {
		Count string `json:"count"`
	} `json:"esearchresult"`
}
