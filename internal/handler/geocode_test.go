package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/handler"
)

// mockGeocoder is a test double for handler.Geocoder.
type mockGeocoder struct {
	search  func(ctx context.Context, query string) ([]domain.LocationCandidate, error)
	reverse func(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error)
}

func (m *mockGeocoder) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	return m.search(ctx, query)
}
func (m *mockGeocoder) Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error) {
	return m.reverse(ctx, lat, lon)
}

// compile-time check: mockGeocoder must satisfy handler.Geocoder.
var _ handler.Geocoder = (*mockGeocoder)(nil)

func TestGeocodeSearch_200(t *testing.T) {
	geo := &mockGeocoder{
		search: func(_ context.Context, query string) ([]domain.LocationCandidate, error) {
			assert.Equal(t, "tiong bahru", query)
			return []domain.LocationCandidate{{ID: "1", Name: "Tiong Bahru"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode/search?q=tiong+bahru", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, geo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []domain.LocationCandidate `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Tiong Bahru", resp.Results[0].Name)
}

func TestGeocodeSearch_422_EmptyQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/geocode/search?q=++", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, &mockGeocoder{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGeocodeSearch_502_Upstream(t *testing.T) {
	geo := &mockGeocoder{
		search: func(context.Context, string) ([]domain.LocationCandidate, error) {
			return nil, domain.ErrUnavailable
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode/search?q=somewhere", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, geo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGeocodeReverse_200(t *testing.T) {
	geo := &mockGeocoder{
		reverse: func(_ context.Context, lat, lon float64) (domain.LocationCandidate, error) {
			assert.InDelta(t, 1.2841, lat, 1e-9)
			assert.InDelta(t, 103.832, lon, 1e-9)
			return domain.LocationCandidate{ID: "7", Name: "Tiong Bahru Bakery"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=1.2841&lon=103.832", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, geo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.LocationCandidate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Tiong Bahru Bakery", resp.Name)
}

func TestGeocodeReverse_400_MissingCoords(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, &mockGeocoder{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
