package node

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dns-fleet/core/reconcile"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"
	"go.uber.org/zap"
)

const (
	opLogs   = "logs"
	opGroups = "groups"
	opLeases = "leases"

	// maxResponseBytes bounds a single decoded response body.
	maxResponseBytes = 64 << 20
)

// Client performs raw API calls against one node and returns typed records.
// Expected node-side failures are returned as *FetchError, never panics.
type Client struct {
	node    Node
	opts    Options
	http    *http.Client
	logger  *zap.Logger
	parsers fastjson.ParserPool
}

// NewClient creates a client for the given node.
func NewClient(n Node, opts Options, logger *zap.Logger) (*Client, error) {
	if n.ID == "" {
		return nil, fmt.Errorf("node id is required")
	}
	if _, err := url.ParseRequestURI(n.URL); err != nil {
		return nil, fmt.Errorf("node %s: invalid url %q: %w", n.ID, n.URL, err)
	}

	// Ensure timeout defaults if not set
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts.Timeout = timeout

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		// Compression is negotiated explicitly so the body can be decoded with klauspost/compress.
		DisableCompression: true,
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		node:   n,
		opts:   opts,
		http:   &http.Client{Timeout: timeout, Transport: transport},
		logger: logger.With(zap.String("node", n.ID)),
	}, nil
}

// Node returns the node this client talks to.
func (c *Client) Node() Node {
	return c.node
}

// FetchLogs returns up to limit query log entries, newest first.
func (c *Client) FetchLogs(ctx context.Context, limit int, filter LogFilter) ([]reconcile.LogEntry, error) {
	params := url.Values{}
	params.Set("name", c.opts.LogAppName)
	params.Set("classPath", c.opts.LogAppClassPath)
	params.Set("pageNumber", "1")
	params.Set("entriesPerPage", strconv.Itoa(limit))
	params.Set("descendingOrder", "true")
	if !filter.Start.IsZero() {
		params.Set("start", filter.Start.UTC().Format(time.RFC3339))
	}
	if !filter.End.IsZero() {
		params.Set("end", filter.End.UTC().Format(time.RFC3339))
	}
	if filter.ClientAddress != "" {
		params.Set("clientIpAddress", filter.ClientAddress)
	}
	if filter.QueryName != "" {
		params.Set("qname", filter.QueryName)
	}
	if filter.ResponseType != "" {
		params.Set("responseType", filter.ResponseType)
	}

	body, err := c.get(ctx, opLogs, "/api/logs/query", params)
	if err != nil {
		return nil, err
	}

	p := c.parsers.Get()
	defer c.parsers.Put(p)

	response, err := parseEnvelope(p, body)
	if err != nil {
		return nil, c.fail(opLogs, 0, err)
	}
	entries, skipped := parseLogEntries(response, c.node.ID)
	if skipped > 0 {
		c.logger.Warn("Skipped log entries with invalid timestamps", zap.Int("skipped", skipped))
	}
	return entries, nil
}

// FetchBlockingGroups returns the blocking groups configured on the node.
func (c *Client) FetchBlockingGroups(ctx context.Context) ([]reconcile.BlockingGroup, error) {
	params := url.Values{}
	params.Set("name", c.opts.BlockingAppName)

	body, err := c.get(ctx, opGroups, "/api/apps/config/get", params)
	if err != nil {
		return nil, err
	}

	p := c.parsers.Get()
	defer c.parsers.Put(p)

	response, err := parseEnvelope(p, body)
	if err != nil {
		return nil, c.fail(opGroups, 0, err)
	}

	// The app config is a JSON document embedded as a string; it needs its own parser
	// because p still owns response.
	cp := c.parsers.Get()
	defer c.parsers.Put(cp)

	groups, err := parseBlockingConfig(cp, response)
	if err != nil {
		return nil, c.fail(opGroups, 0, err)
	}
	return groups, nil
}

// FetchLeases returns the node's DHCP lease table.
func (c *Client) FetchLeases(ctx context.Context) ([]Lease, error) {
	body, err := c.get(ctx, opLeases, "/api/dhcp/leases/list", url.Values{})
	if err != nil {
		return nil, err
	}

	p := c.parsers.Get()
	defer c.parsers.Put(p)

	response, err := parseEnvelope(p, body)
	if err != nil {
		return nil, c.fail(opLeases, 0, err)
	}
	return parseLeases(response), nil
}

// get performs a GET request and returns the decoded body.
func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	params.Set("token", c.node.Token)
	endpoint := strings.TrimRight(c.node.URL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, c.fail(op, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, c.fail(op, resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxResponseBytes))
	if err != nil {
		return nil, c.fail(op, resp.StatusCode, err)
	}
	return body, nil
}

func (c *Client) fail(op string, status int, err error) error {
	return &FetchError{NodeID: c.node.ID, Op: op, StatusCode: status, Err: err}
}
