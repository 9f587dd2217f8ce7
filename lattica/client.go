// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// A Client is an HTTP client with a Lattica API endpoint and
// credentials.
//
// It offers low-level request plumbing (RequestAndDecode) plus entry
// points into the resource collections (Projects). All higher-level
// operations -- listing, module validation polling, workflow
// execution -- go through a Client.
type Client struct {
	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client `json:"-"`

	// Protocol scheme: "http", "https", or "" (https)
	Scheme string

	// Hostname (or host:port) of the Lattica API server.
	APIHost string

	// API key used to authenticate requests.
	AuthToken string

	// Accept unverified certificates. This works only if the
	// Client field is nil: otherwise, it has no effect.
	Insecure bool

	// HTTP headers to add/override in outgoing requests.
	SendHeader http.Header

	// Timeout for requests. NewClientFromConfig and
	// NewClientFromEnv return a Client with a default 5 minute
	// timeout. To disable this timeout and rely on each
	// http.Request's context deadline instead, set Timeout to
	// zero.
	Timeout time.Duration

	// Page size used by collection listings when the caller does
	// not specify one. Zero means DefaultPerPage.
	PerPage int

	defaultRequestID string

	// APIHost and AuthToken were loaded from LATTICA_* env vars
	// (used to customize "no host/token" error messages)
	loadedFromEnv bool
}

// DefaultPerPage is the listing page size used when neither the
// client nor the caller specifies one.
const DefaultPerPage = 100

// InsecureHTTPClient is the default http.Client used by a Client with
// Insecure==true and Client==nil.
var InsecureHTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true}}}

// DefaultSecureClient is the default http.Client used by a Client otherwise.
var DefaultSecureClient = &http.Client{}

// NewClientFromConfig creates a new Client from a loaded Config.
func NewClientFromConfig(cfg *Config) (*Client, error) {
	if cfg.APIHost == "" {
		return nil, errors.New("no APIHost in config")
	}
	return &Client{
		Scheme:    cfg.Scheme,
		APIHost:   cfg.APIHost,
		AuthToken: cfg.AuthToken,
		Insecure:  cfg.Insecure,
		Timeout:   time.Duration(cfg.Timeout),
		PerPage:   cfg.PerPage,
	}, nil
}

// NewClientFromEnv creates a new Client that uses the default HTTP
// client with the API endpoint and credentials given by the
// LATTICA_API_* environment variables.
func NewClientFromEnv() *Client {
	var insecure bool
	if s := strings.ToLower(os.Getenv("LATTICA_API_HOST_INSECURE")); s == "1" || s == "yes" || s == "true" {
		insecure = true
	}
	return &Client{
		Scheme:        "https",
		APIHost:       os.Getenv("LATTICA_API_HOST"),
		AuthToken:     os.Getenv("LATTICA_API_TOKEN"),
		Insecure:      insecure,
		Timeout:       5 * time.Minute,
		loadedFromEnv: true,
	}
}

var reqIDGen = idGenerator{Prefix: "req-"}

// Do adds Authorization and X-Request-Id headers and then calls
// (*http.Client)Do().
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if auth, _ := req.Context().Value(contextKeyAuthorization{}).(string); auth != "" {
		req.Header.Set("Authorization", auth)
	} else if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	if req.Header.Get("X-Request-Id") == "" {
		var reqid string
		if ctxreqid, _ := req.Context().Value(contextKeyRequestID{}).(string); ctxreqid != "" {
			reqid = ctxreqid
		} else if c.defaultRequestID != "" {
			reqid = c.defaultRequestID
		} else {
			reqid = reqIDGen.Next()
		}
		req.Header.Set("X-Request-Id", reqid)
	}
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx := req.Context()
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(c.Timeout))
		req = req.WithContext(ctx)
	}
	resp, err := c.httpClient().Do(req)
	if err == nil && cancel != nil {
		// We need to call cancel() eventually, but we can't
		// use "defer cancel()" because the context has to
		// stay alive until the caller has finished reading
		// the response body.
		resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	} else if cancel != nil {
		cancel()
	}
	return resp, err
}

// cancelOnClose calls a provided CancelFunc when its wrapped
// ReadCloser's Close() method is called.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (coc cancelOnClose) Close() error {
	err := coc.ReadCloser.Close()
	coc.cancel()
	return err
}

// DoAndDecode performs req and unmarshals the response (which must be
// JSON) into dst. Use this instead of RequestAndDecode if you need
// more control of the http.Request object.
func (c *Client) DoAndDecode(dst interface{}, req *http.Request) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && (dst == nil || len(buf) == 0):
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return json.Unmarshal(buf, dst)
	default:
		return newTransactionError(req, resp, buf)
	}
}

// RequestAndDecode performs an API request and unmarshals the
// response (which must be JSON) into dst. The given path is added to
// the server's scheme/host/port to form the request URL.
//
// For GET/HEAD/DELETE requests, params (a struct or map with json
// tags, or url.Values) are sent as the query string; otherwise they
// are sent as a JSON request body.
//
// path must not contain a query string.
func (c *Client) RequestAndDecode(dst interface{}, method, path string, params interface{}) error {
	return c.RequestAndDecodeContext(context.Background(), dst, method, path, params)
}

// RequestAndDecodeContext does the same as RequestAndDecode, but with
// a context.
func (c *Client) RequestAndDecodeContext(ctx context.Context, dst interface{}, method, path string, params interface{}) error {
	if c.APIHost == "" {
		if c.loadedFromEnv {
			return errors.New("LATTICA_API_HOST and/or LATTICA_API_TOKEN environment variables are not set")
		}
		return errors.New("lattica.Client cannot perform request: APIHost is not set")
	}
	urlString := c.apiURL(path)
	var body io.Reader
	if params != nil {
		switch method {
		case "GET", "HEAD", "DELETE":
			urlValues, err := anythingToValues(params)
			if err != nil {
				return err
			}
			u, err := url.Parse(urlString)
			if err != nil {
				return err
			}
			u.RawQuery = urlValues.Encode()
			urlString = u.String()
		default:
			j, err := json.Marshal(params)
			if err != nil {
				return err
			}
			body = bytes.NewReader(j)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, urlString, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.SendHeader {
		req.Header[k] = v
	}
	return c.DoAndDecode(dst, req)
}

// Convert an arbitrary struct to url.Values. For example,
//
//	ListParams{PerPage: 20, PageToken: "x"}
//
// becomes
//
//	url.Values{`per_page`:`20`,`page_token`:`x`}
//
// params itself is returned if it is already an url.Values.
func anythingToValues(params interface{}) (url.Values, error) {
	if v, ok := params.(url.Values); ok {
		return v, nil
	}
	j, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var generic map[string]interface{}
	dec := json.NewDecoder(bytes.NewBuffer(j))
	dec.UseNumber()
	err = dec.Decode(&generic)
	if err != nil {
		return nil, err
	}
	urlValues := url.Values{}
	for k, v := range generic {
		if v, ok := v.(string); ok {
			urlValues.Set(k, v)
			continue
		}
		if v, ok := v.(json.Number); ok {
			urlValues.Set(k, v.String())
			continue
		}
		if v, ok := v.(bool); ok {
			if v {
				urlValues.Set(k, "true")
			}
			// "foo=false", "foo=0", and "foo=" are all
			// taken as true strings, so don't send false
			// values at all -- rely on the default being
			// false.
			continue
		}
		j, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(j, []byte("null")) {
			continue
		}
		urlValues.Set(k, string(j))
	}
	return urlValues, nil
}

// WithRequestID returns a new shallow copy of c that sends the given
// X-Request-Id value (instead of a new randomly generated one) with
// each subsequent request that doesn't provide its own via context or
// header.
func (c *Client) WithRequestID(reqid string) *Client {
	cc := *c
	cc.defaultRequestID = reqid
	return &cc
}

func (c *Client) httpClient() *http.Client {
	switch {
	case c.Client != nil:
		return c.Client
	case c.Insecure:
		return InsecureHTTPClient
	default:
		return DefaultSecureClient
	}
}

func (c *Client) apiURL(path string) string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + c.APIHost + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) perPage() int {
	if c.PerPage > 0 {
		return c.PerPage
	}
	return DefaultPerPage
}

// Projects returns the root project collection.
func (c *Client) Projects() *ProjectCollection {
	return &ProjectCollection{client: c}
}

func fmtPath(format string, args ...interface{}) string {
	quoted := make([]interface{}, len(args))
	for i, a := range args {
		quoted[i] = url.PathEscape(fmt.Sprintf("%v", a))
	}
	return fmt.Sprintf(format, quoted...)
}
