package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/atomic-reactor/arcli/internal/branding"
	"github.com/atomic-reactor/arcli/internal/config"
)

// Parse error codes the client maps to ErrNotFound.
const (
	codeObjectNotFound = 101
	codeScriptFailed   = 141
)

// Client calls the registry server.
type Client struct {
	http   *http.Client
	server string
	app    string
	token  string
}

// New returns a client for the configured registry. A nil httpClient uses
// http.DefaultClient.
func New(httpClient *http.Client, cfg config.Registry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:   httpClient,
		server: strings.TrimRight(cfg.Server, "/"),
		app:    cfg.App,
		token:  cfg.SessionToken,
	}
}

// WithSessionToken returns a copy of c authenticating as token.
func (c *Client) WithSessionToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// SessionToken returns the token the client sends.
func (c *Client) SessionToken() string { return c.token }

// Get fetches a plugin with all of its versions.
func (c *Client) Get(ctx context.Context, name string) (*Plugin, error) {
	var out struct {
		Result *Plugin `json:"result"`
	}
	err := c.do(ctx, http.MethodPost, "/functions/registry-get", map[string]any{
		"name":       name,
		"serialized": true,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetching plugin %s: %w", name, err)
	}
	if out.Result == nil || len(out.Result.Versions) == 0 {
		return nil, fmt.Errorf("fetching plugin %s: %w", name, ErrNotFound)
	}
	if out.Result.Name == "" {
		out.Result.Name = name
	}
	return out.Result, nil
}

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, &u)
	if err != nil {
		return nil, fmt.Errorf("logging in as %s: %w", username, err)
	}
	return &u, nil
}

// Me returns the user owning the client's session token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, fmt.Errorf("validating session: %w", err)
	}
	u.SessionToken = c.token
	return &u, nil
}

// UploadFile stores the content of r under name and returns the stored
// reference.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (*File, error) {
	req, err := c.request(ctx, http.MethodPost, "/files/"+url.PathEscape(name), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/gzip")

	var f File
	if err := c.send(req, &f); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", name, err)
	}
	return &f, nil
}

// Publish registers a new plugin version.
func (c *Client) Publish(ctx context.Context, pr PublishRequest) (*Plugin, error) {
	body := map[string]any{
		"name":        pr.Name,
		"version":     pr.Version,
		"description": pr.Description,
		"checksum":    pr.Checksum,
		"private":     pr.Private,
		"file": map[string]string{
			"__type": "File",
			"name":   pr.File.Name,
			"url":    pr.File.URL,
		},
	}
	var out struct {
		Result *Plugin `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/functions/registry-publish", body, &out); err != nil {
		return nil, fmt.Errorf("publishing %s@%s: %w", pr.Name, pr.Version, err)
	}
	return out.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("X-Parse-Application-Id", c.app)
	if c.token != "" {
		req.Header.Set("X-Parse-Session-Token", c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Status: resp.StatusCode}
		_ = json.Unmarshal(data, e)
		if e.Code == codeObjectNotFound || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, e.Error())
		}
		return e
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// IsScriptError reports whether err is a cloud-function failure raised by
// the server-side code.
func IsScriptError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == codeScriptFailed
}
