// Package client is a Go client for the RateIt HTTP API.
//
// Usage:
//
//	c := client.New("http://localhost:8080")
//	res, err := c.Authenticate(ctx, "Demo User", "demo123")
//	c.SetToken(res.Token)
//	reviews, err := c.ListReviews(ctx, models.ReviewFilter{Category: "coffee_shops"})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rateit/internal/models"
)

// DefaultTimeout applies when no *http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// ErrCredentialsRequired is returned before any request when the name or password is blank.
var ErrCredentialsRequired = errors.New("name and password are required")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client calls the RateIt API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token. An empty token sends no Authorization header.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticate logs in, registering the name when the server has never seen it.
func (c *Client) Authenticate(ctx context.Context, name, password string) (*models.AuthResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	var resp models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth", models.AuthRequest{
		Action:   models.ActionAuthenticate,
		Name:     name,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.AuthResult, nil
}

// ListUsers returns every account without passwords.
func (c *Client) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	var resp models.UserListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// MediaFile is one file attached to a review submission.
type MediaFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ReviewInput is a review to submit. Zero-valued fields are left for the server to default.
type ReviewInput struct {
	UserID   string
	ItemID   string
	Category string
	Rating   int
	Caption  string
	Keywords []string
	Media    []MediaFile
}

// SubmitReview uploads a review with its media.
func (c *Client) SubmitReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"userId", in.UserID},
		{"itemId", in.ItemID},
		{"category", in.Category},
		{"rating", strconv.Itoa(in.Rating)},
		{"caption", in.Caption},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	for _, kw := range in.Keywords {
		if err := mw.WriteField("keywords", kw); err != nil {
			return nil, err
		}
	}

	for _, m := range in.Media {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, m.Filename))
		contentType := m.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, m.Body); err != nil {
			return nil, fmt.Errorf("read %s: %w", m.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/reviews", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.ReviewResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Review, nil
}

// ListReviews returns reviews matching filter; the zero filter returns all of them.
func (c *Client) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.UserID != "" {
		q.Set("userId", filter.UserID)
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.MinRating != nil {
		q.Set("minRating", strconv.Itoa(*filter.MinRating))
	}

	path := "/api/reviews"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.ReviewListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// ToggleSaved saves or unsaves a review and returns the user's resulting list.
func (c *Client) ToggleSaved(ctx context.Context, userID, reviewID string) ([]string, error) {
	var resp models.SavedResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/saved", models.ToggleSavedRequest{UserID: userID, ReviewID: reviewID}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Saved, nil
}

// Saved returns the user's saved review IDs.
func (c *Client) Saved(ctx context.Context, userID string) ([]string, error) {
	var resp models.SavedResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/saved?userId="+url.QueryEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Saved, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do sends req and decodes a 2xx body into out. Other statuses become *APIError.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
