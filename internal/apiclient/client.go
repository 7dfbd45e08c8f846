// Package apiclient is the HTTP client for the Wayfarer API used by the
// command-line tools. It satisfies the collaborator interfaces the capture
// and deletion controllers depend on, so the CLI drives the exact same code
// paths as any other frontend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Client talks to one Wayfarer API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a Client for the API at baseURL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search forward-geocodes a free-text query through the server's proxy.
func (c *Client) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	var resp struct {
		Results []domain.LocationCandidate `json:"results"`
	}
	q := url.Values{"q": {query}}
	if err := c.get(ctx, "/geocode/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Client.Search: %w", err)
	}
	return resp.Results, nil
}

// Reverse resolves coordinates to a location candidate through the server's
// proxy.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error) {
	var candidate domain.LocationCandidate
	q := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	if err := c.get(ctx, "/geocode/reverse?"+q.Encode(), &candidate); err != nil {
		return domain.LocationCandidate{}, fmt.Errorf("apiclient.Client.Reverse: %w", err)
	}
	return candidate, nil
}

// CreateCheckIn persists a new check-in.
func (c *Client) CreateCheckIn(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error) {
	body := map[string]any{
		"location_name":  in.LocationName,
		"location_label": in.LocationLabel,
		"latitude":       in.Latitude,
		"longitude":      in.Longitude,
		"visited_at":     in.VisitedAt.Format(time.RFC3339),
	}
	var created domain.CheckIn
	if err := c.post(ctx, "/check-ins", body, &created); err != nil {
		return domain.CheckIn{}, fmt.Errorf("apiclient.Client.CreateCheckIn: %w", err)
	}
	return created, nil
}

// Delete removes a check-in by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/check-ins/"+id, nil)
	if err != nil {
		return fmt.Errorf("apiclient.Client.Delete: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient.Client.Delete: %w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("apiclient.Client.Delete: %w", statusError(resp.StatusCode))
	}
	return nil
}

// ListTrips returns all derived trips, most recently ended first.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var resp struct {
		Trips []domain.Trip `json:"trips"`
	}
	if err := c.get(ctx, "/trips", &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Client.ListTrips: %w", err)
	}
	return resp.Trips, nil
}

// TripCheckIns returns one trip's check-ins, oldest first.
func (c *Client) TripCheckIns(ctx context.Context, tripID string) ([]domain.CheckIn, error) {
	var resp struct {
		CheckIns []domain.CheckIn `json:"check_ins"`
	}
	if err := c.get(ctx, "/trips/"+tripID+"/check-ins", &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Client.TripCheckIns: %w", err)
	}
	return resp.CheckIns, nil
}

// get issues a GET and decodes a 200 response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusOK, out)
}

// post issues a JSON POST and decodes the expected response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, http.StatusCreated, out)
}

// do executes the request and maps non-success statuses onto the domain
// sentinels, so controllers never see raw HTTP codes.
func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return statusError(resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// statusError maps an HTTP status onto the matching domain sentinel.
func statusError(status int) error {
	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusForbidden:
		return domain.ErrPermissionDenied
	default:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUnavailable, status)
	}
}
