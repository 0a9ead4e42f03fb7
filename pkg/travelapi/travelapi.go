package travelapi

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"TravelGolang/pkg/nlp"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ItfTravelAPI is the upstream inventory provider for flight and hotel
// searches. Results come back already scored and priced; this client only
// forwards the structured query.
type ItfTravelAPI interface {
	SearchFlights(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error)
	SearchHotels(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error)
}

type travelClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logrus.Logger
}

func New(log *logrus.Logger) ItfTravelAPI {
	return &travelClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    os.Getenv("TRAVEL_API_BASE_URL"),
		apiKey:     os.Getenv("TRAVEL_API_KEY"),
		log:        log,
	}
}

type searchResponse struct {
	Results []searchResultPayload `json:"results"`
}

type searchResultPayload struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

func (t *travelClient) SearchFlights(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	return t.search(ctx, "/v1/flights/search", "flight", query)
}

func (t *travelClient) SearchHotels(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	return t.search(ctx, "/v1/hotels/search", "hotel", query)
}

func (t *travelClient) search(ctx context.Context, path string, kind string, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	body, err := jsoniter.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Error("Travel API request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Error("Travel API returned non-200 status")
		return nil, fmt.Errorf("travel api returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]nlp.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, nlp.SearchResult{
			ID:      r.ID,
			Name:    r.Name,
			Kind:    kind,
			Price:   r.Price,
			Rating:  r.Rating,
			Query:   query.Query,
			Filters: query.Filters,
		})
	}

	return results, nil
}
