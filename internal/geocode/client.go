// Package geocode talks to a Nominatim-compatible geocoding provider.
// It offers free-text search and coordinate reverse lookup, both normalized
// into domain.LocationCandidate, plus an optional Redis cache wrapper.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
)

// DefaultBaseURL is the public Nominatim instance. Self-hosted deployments
// override it via NOMINATIM_URL.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// searchLimit caps the number of candidates returned per search.
const searchLimit = 5

// Client is an HTTP client for the Nominatim search and reverse APIs.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	// viewbox biases (but does not bound) search results toward the user's
	// home area, in "lon1,lat1,lon2,lat2" form. Empty disables biasing.
	viewbox string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithViewbox biases search results toward the given "lon1,lat1,lon2,lat2" box.
func WithViewbox(box string) Option {
	return func(c *Client) { c.viewbox = box }
}

// NewClient constructs a Client against the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   baseURL,
		userAgent: "wayfarer/1.0",
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimPlace is the subset of a Nominatim jsonv2 result we consume.
// Lat and Lon arrive as strings in the wire format.
type nominatimPlace struct {
	PlaceID     int64            `json:"place_id"`
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

// Search queries the provider by free text and returns up to searchLimit
// candidates in provider order. An empty result list is a valid outcome, not
// an error. Provider failures are wrapped in domain.ErrUnavailable.
func (c *Client) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(searchLimit))
	q.Set("q", query)
	if c.viewbox != "" {
		q.Set("viewbox", c.viewbox)
		q.Set("bounded", "0")
	}

	var places []nominatimPlace
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: %w", err)
	}

	candidates := make([]domain.LocationCandidate, 0, len(places))
	for _, p := range places {
		candidates = append(candidates, p.toCandidate())
	}
	return candidates, nil
}

// Reverse resolves a coordinate pair to a single candidate.
// When the provider returns no usable name, the candidate falls back to
// "Current location" so quick check-ins always have something to display.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var place nominatimPlace
	if err := c.get(ctx, "/reverse", q, &place); err != nil {
		return domain.LocationCandidate{}, fmt.Errorf("geocode.Client.Reverse: %w", err)
	}

	cand := place.toCandidate()
	if cand.ID == "0" {
		cand.ID = fmt.Sprintf("%v-%v", lat, lon)
	}
	if cand.Name == "" {
		cand.Name = "Current location"
	}
	if cand.Latitude == 0 && cand.Longitude == 0 {
		cand.Latitude, cand.Longitude = lat, lon
	}
	return cand, nil
}

// get performs one provider request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %d", domain.ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// toCandidate normalizes a provider place into the shape the rest of the
// system consumes: stringified stable ID, short name with display-name
// fallback, condensed address, numeric coordinates.
func (p nominatimPlace) toCandidate() domain.LocationCandidate {
	name := p.Name
	if name == "" {
		name = p.DisplayName
	}
	lat, _ := strconv.ParseFloat(p.Lat, 64)
	lon, _ := strconv.ParseFloat(p.Lon, 64)
	return domain.LocationCandidate{
		ID:        strconv.FormatInt(p.PlaceID, 10),
		Name:      name,
		Formatted: p.Address.condense(p.DisplayName),
		Latitude:  lat,
		Longitude: lon,
	}
}
