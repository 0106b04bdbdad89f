package rpcboundary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PriceFetcher implements boundary.PriceFetcher against a public
// historical-price HTTP API. This is the one stdlib-only piece of
// internal/rpcboundary: no example repo imports a price-feed SDK, and a
// single timestamped GET + JSON decode doesn't warrant one.
type PriceFetcher struct {
	baseURL string
	client  *http.Client
}

// NewPriceFetcher builds a fetcher against baseURL, a CoinGecko-shaped
// historical price endpoint returning {"prices": [[timestamp_ms, usd], ...]}.
func NewPriceFetcher(baseURL string) *PriceFetcher {
	return &PriceFetcher{baseURL: baseURL, client: &http.Client{Timeout: 10 * time.Second}}
}

type priceRangeResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// GetSolUsdPrice returns the USD price point nearest to timestampMs among
// the returned series, or nil if the response carries no data.
func (p *PriceFetcher) GetSolUsdPrice(ctx context.Context, timestampMs int64) (*float64, error) {
	from := timestampMs/1000 - 3600
	to := timestampMs/1000 + 3600
	url := fmt.Sprintf("%s?vs_currency=usd&from=%d&to=%d", p.baseURL, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpcboundary: price API returned %d", resp.StatusCode)
	}

	var parsed priceRangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Prices) == 0 {
		return nil, nil
	}

	best := parsed.Prices[0]
	bestDelta := abs(best[0] - float64(timestampMs))
	for _, point := range parsed.Prices[1:] {
		delta := abs(point[0] - float64(timestampMs))
		if delta < bestDelta {
			best, bestDelta = point, delta
		}
	}
	price := best[1]
	return &price, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
