package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/services"
	"github.com/stretchr/testify/require"
)

func newListingService(t *testing.T, handler http.HandlerFunc) services.ListingService {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return services.NewListingService(services.ListingServiceConfig{
		Builder:    cdn.NewBuilder(cdn.BuilderConfig{BaseURL: ts.URL, CloudName: "demo"}),
		HTTPClient: ts.Client(),
		Timeout:    2 * time.Second,
	})
}

func TestListByTagSuccessKeepsResponseOrder(t *testing.T) {
	t.Parallel()

	svc := newListingService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/list/x.json", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resources":[
			{"public_id":"b","format":"jpg","version":1,"created_at":"2025-01-01T00:00:00Z"},
			{"public_id":"a","format":"jpg","version":1,"created_at":"2025-01-01T00:00:00Z"},
			{"public_id":"c","format":"jpg","version":1,"created_at":"2025-01-01T00:00:00Z"}
		]}`))
	})

	result := svc.ListByTag(context.Background(), "x")
	require.Equal(t, services.ListSuccess, result.Outcome)
	require.Equal(t, []string{"b", "a", "c"}, result.IDs)
	require.NoError(t, result.Err)
}

func TestListByTagEmptyResources(t *testing.T) {
	t.Parallel()

	svc := newListingService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resources":[]}`))
	})

	result := svc.ListByTag(context.Background(), "x")
	require.Equal(t, services.ListEmpty, result.Outcome)
	require.Empty(t, result.IDs)
}

func TestListByTagFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "listing disabled",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"resources": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newListingService(t, tt.handler)

			result := svc.ListByTag(context.Background(), "x")
			require.Equal(t, services.ListFailure, result.Outcome)
			require.Error(t, result.Err)
			require.Empty(t, result.IDs)
		})
	}
}

func TestListByTagTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	svc := services.NewListingService(services.ListingServiceConfig{
		Builder:    cdn.NewBuilder(cdn.BuilderConfig{BaseURL: ts.URL, CloudName: "demo"}),
		HTTPClient: ts.Client(),
		Timeout:    50 * time.Millisecond,
	})

	result := svc.ListByTag(context.Background(), "x")
	require.Equal(t, services.ListFailure, result.Outcome)
	require.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestListByTagUnconfiguredMakesNoRequest(t *testing.T) {
	t.Parallel()

	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(ts.Close)

	svc := services.NewListingService(services.ListingServiceConfig{
		Builder:    cdn.NewBuilder(cdn.BuilderConfig{BaseURL: ts.URL}),
		HTTPClient: ts.Client(),
	})

	result := svc.ListByTag(context.Background(), "x")
	require.Equal(t, services.ListEmpty, result.Outcome)
	require.False(t, called)
}
