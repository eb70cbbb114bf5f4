package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adampresley/yearinreview/pkg/cdn"
)

type ListOutcome int

const (
	ListSuccess ListOutcome = iota
	ListEmpty
	ListFailure
)

func (o ListOutcome) String() string {
	switch o {
	case ListSuccess:
		return "success"

	case ListEmpty:
		return "empty"

	default:
		return "failure"
	}
}

/*
ListResult is the outcome of one tag listing. IDs are in the order the
CDN returned them. Err is only set for ListFailure.
*/
type ListResult struct {
	Outcome ListOutcome
	IDs     []string
	Err     error
}

type ListingServicer interface {
	ListByTag(ctx context.Context, tag string) ListResult
}

type ListingServiceConfig struct {
	Builder    cdn.Builder
	HTTPClient *http.Client
	Timeout    time.Duration
}

type ListingService struct {
	builder    cdn.Builder
	httpClient *http.Client
	timeout    time.Duration
}

func NewListingService(config ListingServiceConfig) ListingService {
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}

	return ListingService{
		builder:    config.Builder,
		httpClient: config.HTTPClient,
		timeout:    config.Timeout,
	}
}

func (s ListingService) ListByTag(ctx context.Context, tag string) ListResult {
	var (
		err      error
		request  *http.Request
		response *http.Response
		payload  cdn.ListResponse
	)

	if !s.builder.Configured() {
		return ListResult{Outcome: ListEmpty}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	u := s.builder.ListURL(tag)

	if request, err = http.NewRequestWithContext(ctx, http.MethodGet, u, nil); err != nil {
		return failure(fmt.Errorf("error building listing request for tag '%s': %w", tag, err))
	}

	if response, err = s.httpClient.Do(request); err != nil {
		return failure(fmt.Errorf("error fetching listing for tag '%s': %w", tag, err))
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return failure(fmt.Errorf("error fetching listing for tag '%s', status: %s", tag, response.Status))
	}

	if err = json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return failure(fmt.Errorf("error decoding listing for tag '%s': %w", tag, err))
	}

	ids := make([]string, 0, len(payload.Resources))

	for _, resource := range payload.Resources {
		if resource.PublicID != "" {
			ids = append(ids, resource.PublicID)
		}
	}

	if len(ids) == 0 {
		return ListResult{Outcome: ListEmpty}
	}

	return ListResult{Outcome: ListSuccess, IDs: ids}
}

func failure(err error) ListResult {
	return ListResult{Outcome: ListFailure, Err: err}
}
