// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphdb executes SPARQL queries against a triple store over
// HTTP and normalizes the standard SPARQL JSON results format into plain
// rows. The store itself is an external collaborator; this package holds
// no business logic.
package graphdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/method-recommender/internal/httputil"
	"github.com/pdiddy/method-recommender/pkg/types"
)

const defaultTimeout = 30 * time.Second

// BindingValue is one tagged value in a SPARQL JSON result binding.
type BindingValue struct {
	Type     string `json:"type,omitempty"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// BindingSet is the raw result of a SPARQL select, in the SPARQL 1.1
// JSON results format. The shape is preserved exactly for
// interoperability with any compliant store.
type BindingSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]BindingValue `json:"bindings"`
	} `json:"results"`
}

// Client talks to one repository of a SPARQL 1.1 endpoint. The embedded
// http.Client pools connections and lives for the process lifetime;
// construct one Client at startup and share it.
type Client struct {
	queryURL  string
	updateURL string
	username  string
	password  string
	userAgent string
	http      *http.Client
}

// NewClient builds a pooled client for cfg's repository. A non-positive
// timeout falls back to 30 s; outbound queries never run without one.
func NewClient(cfg types.GraphDBConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	repo := fmt.Sprintf("%s/repositories/%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Repository)

	return &Client{
		queryURL:  repo,
		updateURL: repo + "/statements",
		username:  cfg.Username,
		password:  cfg.Password,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// Select executes a read query and returns the raw binding set. Non-2xx
// responses surface as *httputil.StatusError with the upstream status and
// body; timeouts surface as httputil.ErrTimeout.
func (c *Client) Select(ctx context.Context, query string) (BindingSet, error) {
	reqURL := c.queryURL + "?" + url.Values{"query": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return BindingSet{}, fmt.Errorf("creating select request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return BindingSet{}, fmt.Errorf("graphdb select: %w", httputil.ClassifyTransportErr(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return BindingSet{}, fmt.Errorf("graphdb select: %w", httputil.NewStatusError(resp))
	}

	var set BindingSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return BindingSet{}, fmt.Errorf("parsing graphdb response: %w", err)
	}
	return set, nil
}

// Update executes a write statement against the repository's statements
// resource. The failure taxonomy matches Select.
func (c *Client) Update(ctx context.Context, update string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.updateURL,
		strings.NewReader(update))
	if err != nil {
		return fmt.Errorf("creating update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/sparql-update")
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graphdb update: %w", httputil.ClassifyTransportErr(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("graphdb update: %w", httputil.NewStatusError(resp))
	}

	// Drain so the pooled connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Ping runs a trivial select to check connectivity.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Select(ctx, "SELECT (1 AS ?ok) WHERE {}")
	return err
}

func (c *Client) decorate(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}
