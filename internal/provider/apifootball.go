// Package provider fetches fixture results from the API-Football HTTP
// API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// APIFootball implements contracts.FixtureResultProvider against the
// API-Football v3 fixtures endpoint.
type APIFootball struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIFootball creates a provider. baseURL may be empty to use the
// production API.
func NewAPIFootball(baseURL, apiKey string) *APIFootball {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &APIFootball{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// fixturesResponse mirrors the API-Football envelope; only the fields
// settlement needs are decoded.
type fixturesResponse struct {
	Response []struct {
		Fixture models.FixtureInfo `json:"fixture"`
		Goals   models.Goals       `json:"goals"`
	} `json:"response"`
}

// GetFixtureResult fetches the current state of one fixture. An
// unknown fixture returns (nil, nil); a transport or HTTP failure is
// an error.
func (p *APIFootball) GetFixtureResult(ctx context.Context, matchID string) (*models.FixtureResult, error) {
	url := fmt.Sprintf("%s/fixtures?id=%s", p.baseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apisports-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned %d", resp.StatusCode)
	}

	var body fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Response) == 0 {
		return nil, nil
	}

	return &models.FixtureResult{
		Fixture: body.Response[0].Fixture,
		Goals:   body.Response[0].Goals,
	}, nil
}
