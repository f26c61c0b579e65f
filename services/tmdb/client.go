package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// ErrNoCredentials is returned on first use when neither a v4 token nor a v3
// API key is configured. It is a request-time failure, not a startup crash.
var ErrNoCredentials = errors.New("tmdb: no credentials configured (set TMDB_TOKEN or TMDB_API_KEY)")

// UpstreamError is a non-success response from the TMDB API.
type UpstreamError struct {
	Path   string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb %s %d: %s", e.Path, e.Status, e.Body)
}

// client is a minimal TMDB v3 REST client. Authentication prefers the v4
// read access token (Bearer header); a v3 key falls back to the api_key
// query parameter.
type client struct {
	baseURL string
	token   string
	apiKey  string
	httpc   *http.Client
}

func newClient(token, apiKey string, httpc *http.Client) *client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &client{baseURL: tmdbBaseURL, token: token, apiKey: apiKey, httpc: httpc}
}

func (c *client) isConfigured() bool {
	return c.token != "" || c.apiKey != ""
}

// get issues a GET against the TMDB API and decodes the JSON body into v.
// Parameters with empty values are omitted from the query string entirely,
// never sent as empty-string params.
func (c *client) get(ctx context.Context, path string, params map[string]string, v any) error {
	if !c.isConfigured() {
		return ErrNoCredentials
	}

	q := url.Values{}
	for key, val := range params {
		if val == "" {
			continue
		}
		q.Set(key, val)
	}
	if c.token == "" {
		q.Set("api_key", c.apiKey)
	}

	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &UpstreamError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
