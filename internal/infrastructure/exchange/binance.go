package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/JulianZulFont/AppDash-2/internal/domain"
)

const (
	BinanceBaseURL = "https://api.binance.com"

	// snippetLimit bounds how much of an error response body is carried
	// into the error message shown on the dashboard.
	snippetLimit = 256
)

// APIError describes a non-2xx response from the exchange.
type APIError struct {
	Status  int
	Snippet string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance: status %d: %s", e.Status, e.Snippet)
}

// BinanceAdapter implements domain.MarketDataSource against the Binance
// public spot API. All endpoints used are unauthenticated.
type BinanceAdapter struct {
	baseURL string
	client  *http.Client
}

func NewBinanceAdapter(baseURL string, timeout time.Duration) *BinanceAdapter {
	if baseURL == "" {
		baseURL = BinanceBaseURL
	}
	return &BinanceAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *BinanceAdapter) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "AppDash/2.0")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Snippet: snippet(body)}
	}

	return body, nil
}

func snippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}

// GetCurrentPrice fetches the spot price for a symbol via the ticker endpoint.
func (b *BinanceAdapter) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	body, err := b.get(ctx, "/api/v3/ticker/price?symbol="+symbol)
	if err != nil {
		return 0, err
	}

	var result struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode ticker response: %w", err)
	}

	price, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", result.Price, symbol, err)
	}

	return price, nil
}

// GetCandles fetches up to limit klines for a symbol at the given interval.
// Binance returns rows as mixed-type arrays:
// [openTime(ms), open, high, low, close, volume, closeTime, ...]
// Only the open time and close price are extracted. An empty result is an
// error; the dashboard treats a chart with no points as a failed fetch.
func (b *BinanceAdapter) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	path := fmt.Sprintf("/api/v3/klines?symbol=%s&interval=%s&limit=%d", symbol, interval, limit)
	body, err := b.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("binance: no data returned for %s", symbol)
	}

	candles := make([]domain.Candle, 0, len(rows))
	for _, raw := range rows {
		if len(raw) < 5 {
			return nil, fmt.Errorf("binance: malformed kline row for %s", symbol)
		}

		openMs, ok := raw[0].(float64)
		if !ok {
			return nil, fmt.Errorf("binance: malformed kline open time for %s", symbol)
		}
		closeStr, ok := raw[4].(string)
		if !ok {
			return nil, fmt.Errorf("binance: malformed kline close for %s", symbol)
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return nil, fmt.Errorf("binance: invalid close %q for %s: %w", closeStr, symbol, err)
		}

		candles = append(candles, domain.Candle{
			OpenTime: time.UnixMilli(int64(openMs)).UTC(),
			Close:    closePrice,
		})
	}

	// Binance returns klines oldest first; the chart requires ascending order,
	// so keep the invariant explicit in case the provider changes.
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })

	return candles, nil
}
