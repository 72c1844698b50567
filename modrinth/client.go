// Package modrinth is a typed client for the Modrinth v2 REST API. It wraps
// projects, versions and users in handle types whose methods map one-to-one
// onto API operations, and resolves version dependencies for downloads.
package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.modrinth.com/v2"

// DefaultTimeout bounds each request; the API has no long-running calls.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent identifies this library. The API requires a User-Agent and
// asks for a contactable one, so set Client.UserAgent for your application.
const DefaultUserAgent = "rinthtools/rinth"

// Labrinth allows 300 requests per minute per IP.
const requestsPerMinute = 300

// Client issues requests against the Modrinth API. Every call is synchronous
// and independent; there is no caching. The zero value is not usable, call
// NewClient.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter

	// BaseURL may be pointed at a staging instance or a test server.
	BaseURL   string
	UserAgent string
	// Token is sent as the Authorization header on every request when set.
	// Read operations work without it; write operations require it.
	Token string
}

// NewClient wraps the given http.Client. Pass nil to use a default client
// with the standard 60 second timeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerMinute)/60, 5),
		BaseURL:    DefaultBaseURL,
		UserAgent:  DefaultUserAgent,
	}
}

func (c *Client) makeRequest(method string, endpoint string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	reqURL := c.BaseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, reqURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}

	// Client-side limiting; the server would answer 429 anyway.
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	return resp, nil
}

// checkResponse applies the default status mapping: 401 to no-authorization,
// 404 to not-found, any other non-2xx to invalid-request with the body kept.
// Operations with endpoint-specific 400 semantics inspect the response first.
func checkResponse(resp *http.Response, resource string, operation string) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &NoAuthorizationError{Operation: operation}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: resource}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(resp.Body)
		return &InvalidRequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// makeGet performs a GET and returns the response body after default status
// mapping.
func (c *Client) makeGet(endpoint string, query url.Values, resource string, operation string) ([]byte, error) {
	resp, err := c.makeRequest(http.MethodGet, endpoint, query, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp, resource, operation); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// listParam JSON-encodes a list-valued query parameter; the API expects
// loaders=["fabric"] rather than repeated keys.
func listParam(query url.Values, key string, values []string) {
	if values == nil {
		return
	}
	encoded, _ := json.Marshal(values)
	query.Set(key, string(encoded))
}

// GetProject fetches a project by ID or slug; the API treats the two
// interchangeably.
func (c *Client) GetProject(idOrSlug string) (*Project, error) {
	body, err := c.makeGet("/project/"+url.PathEscape(idOrSlug), nil, "project "+idOrSlug, "see project "+idOrSlug)
	if err != nil {
		return nil, err
	}
	model, err := ParseProjectModel(body)
	if err != nil {
		return nil, err
	}
	return &Project{Model: model, client: c}, nil
}

// ProjectExists reports whether a project with the given ID or slug exists.
func (c *Client) ProjectExists(idOrSlug string) (bool, error) {
	_, err := c.makeGet("/project/"+url.PathEscape(idOrSlug)+"/check", nil, "project "+idOrSlug, "see project "+idOrSlug)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetVersion fetches a version by ID.
func (c *Client) GetVersion(id string) (*Version, error) {
	body, err := c.makeGet("/version/"+url.PathEscape(id), nil, "version "+id, "see version "+id)
	if err != nil {
		return nil, err
	}
	model, err := ParseVersionModel(body)
	if err != nil {
		return nil, err
	}
	return &Version{Model: model, client: c}, nil
}

// GetUser fetches a user by ID or username.
func (c *Client) GetUser(id string) (*User, error) {
	body, err := c.makeGet("/user/"+url.PathEscape(id), nil, "user "+id, "see user "+id)
	if err != nil {
		return nil, err
	}
	model, err := ParseUserModel(body)
	if err != nil {
		return nil, err
	}
	return &User{Model: model, client: c}, nil
}

// GetCurrentUser fetches the user the client's token belongs to.
func (c *Client) GetCurrentUser() (*User, error) {
	body, err := c.makeGet("/user", nil, "current user", "get the current user")
	if err != nil {
		return nil, err
	}
	model, err := ParseUserModel(body)
	if err != nil {
		return nil, err
	}
	return &User{Model: model, client: c}, nil
}

// GetUsers fetches multiple users by ID in one call.
func (c *Client) GetUsers(ids []string) ([]*User, error) {
	query := url.Values{}
	listParam(query, "ids", ids)
	body, err := c.makeGet("/users", query, "users", "see users")
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse user list: %w", err)
	}
	users := make([]*User, 0, len(raw))
	for _, entry := range raw {
		model, err := ParseUserModel(entry)
		if err != nil {
			return nil, err
		}
		users = append(users, &User{Model: model, client: c})
	}
	return users, nil
}

// Fetch downloads arbitrary content (version files live on the CDN, not
// under BaseURL). The default status mapping still applies.
func (c *Client) Fetch(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download of %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if err := checkResponse(resp, rawURL, "download "+rawURL); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
