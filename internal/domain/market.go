package domain

import "time"

// Coin describes one entry of the fixed trading pair catalog shown in the
// dashboard dropdowns.
type Coin struct {
	Symbol    string `json:"symbol"`
	Label     string `json:"label"`
	QuoteCoin string `json:"quote_coin"`
}

// Coins is the enumerated set of pairs the dashboard tracks.
var Coins = []Coin{
	{Symbol: "BTCUSDT", Label: "Bitcoin (BTC)", QuoteCoin: "USDT"},
	{Symbol: "ETHUSDT", Label: "Ethereum (ETH)", QuoteCoin: "USDT"},
	{Symbol: "SOLUSDT", Label: "Solana (SOL)", QuoteCoin: "USDT"},
	{Symbol: "DOGEUSDT", Label: "Dogecoin (DOGE)", QuoteCoin: "USDT"},
	{Symbol: "ADAUSDT", Label: "Cardano (ADA)", QuoteCoin: "USDT"},
}

// Periods lists the selectable history windows in days.
var Periods = []int{1, 7, 30}

// LookupCoin returns the catalog entry for a symbol, or false if the symbol
// is not part of the catalog.
func LookupCoin(symbol string) (Coin, bool) {
	for _, c := range Coins {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Coin{}, false
}

// ValidPeriod reports whether days is one of the selectable windows.
func ValidPeriod(days int) bool {
	for _, p := range Periods {
		if p == days {
			return true
		}
	}
	return false
}

// maxKlinePoints is the hard cap on points requested per history window.
const maxKlinePoints = 1000

// PeriodSampling maps a history window in days to the kline sampling interval
// and the point limit for that window. Short windows sample hourly, long
// windows every four hours, keeping the point count bounded.
func PeriodSampling(days int) (interval string, limit int) {
	if days <= 7 {
		interval = "1h"
		limit = days * 24
	} else {
		interval = "4h"
		limit = days * 6
	}
	if limit > maxKlinePoints {
		limit = maxKlinePoints
	}
	return interval, limit
}

// PriceReading is one spot price observation for a symbol.
type PriceReading struct {
	Symbol    string    `json:"symbol"`
	Value     float64   `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Candle is one fixed-interval aggregate of a price series. Only the open
// time and close price are carried; the chart plots closes.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Close    float64   `json:"close"`
}
