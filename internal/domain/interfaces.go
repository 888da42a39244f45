package domain

import "context"

// MarketDataSource defines the interface for fetching market data from an
// exchange's public API.
type MarketDataSource interface {
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
}
