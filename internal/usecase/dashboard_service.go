package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/JulianZulFont/AppDash-2/internal/domain"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// pricePrecision is the number of decimal digits shown for a price.
const pricePrecision = 6

// PriceView is the renderable state of the current-price panel for one
// symbol. On failure Text is empty and Err carries the message; a stale view
// has both a usable Text and a non-empty Err.
type PriceView struct {
	Symbol    string    `json:"symbol"`
	Text      string    `json:"text"`
	Value     float64   `json:"value"`
	Err       string    `json:"error,omitempty"`
	Stale     bool      `json:"stale,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ChartView is the renderable state of the history panel: a title, ascending
// chart points, and an error annotation when the series is unavailable.
type ChartView struct {
	Symbol string          `json:"symbol"`
	Days   int             `json:"days"`
	Title  string          `json:"title"`
	Points []domain.Candle `json:"points"`
	Err    string          `json:"error,omitempty"`
	Stale  bool            `json:"stale,omitempty"`
}

// DashboardService computes dashboard view state from the market data source,
// reading through TTL caches so timer ticks and page loads within the same
// window share one upstream fetch.
type DashboardService struct {
	source     domain.MarketDataSource
	prices     *TTLCache[domain.PriceReading]
	candles    *TTLCache[[]domain.Candle]
	priceTTL   time.Duration
	historyTTL time.Duration
	logger     *zap.Logger
	timeNow    func() time.Time // For testing
}

func NewDashboardService(source domain.MarketDataSource, priceTTL, historyTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		source:     source,
		prices:     NewTTLCache[domain.PriceReading](),
		candles:    NewTTLCache[[]domain.Candle](),
		priceTTL:   priceTTL,
		historyTTL: historyTTL,
		logger:     logger,
		timeNow:    time.Now,
	}
}

// Quote returns the current-price view for a symbol, served from cache
// within the price TTL. Fetch failures degrade to the last known price
// marked stale, or to an error-only view when nothing was ever fetched.
func (s *DashboardService) Quote(ctx context.Context, symbol string) PriceView {
	coin, ok := domain.LookupCoin(symbol)
	if !ok {
		return PriceView{Symbol: symbol, Err: fmt.Sprintf("unknown symbol %q", symbol)}
	}

	reading, stale, err := s.prices.Get(symbol, s.priceTTL, func() (domain.PriceReading, error) {
		value, err := s.source.GetCurrentPrice(ctx, symbol)
		if err != nil {
			return domain.PriceReading{}, err
		}
		return domain.PriceReading{Symbol: symbol, Value: value, FetchedAt: s.timeNow()}, nil
	})

	view := PriceView{Symbol: symbol, Stale: stale}
	if err != nil {
		view.Err = err.Error()
		s.logger.Warn("price fetch failed",
			zap.String("symbol", symbol), zap.Bool("stale_served", stale), zap.Error(err))
		if !stale {
			return view
		}
	}

	view.Value = reading.Value
	view.FetchedAt = reading.FetchedAt
	view.Text = FormatPrice(coin, reading.Value)
	return view
}

// History returns the chart view for a symbol over a period of days, served
// from cache within the history TTL. An empty series never reaches the view:
// the source reports it as an error and the chart renders empty with the
// message attached.
func (s *DashboardService) History(ctx context.Context, symbol string, days int) ChartView {
	view := ChartView{Symbol: symbol, Days: days, Points: []domain.Candle{}}

	if _, ok := domain.LookupCoin(symbol); !ok {
		view.Err = fmt.Sprintf("unknown symbol %q", symbol)
		return view
	}
	if !domain.ValidPeriod(days) {
		view.Err = fmt.Sprintf("unsupported period %d days", days)
		return view
	}

	view.Title = fmt.Sprintf("%s - last %d days", symbol, days)

	interval, limit := domain.PeriodSampling(days)
	key := fmt.Sprintf("%s/%d", symbol, days)

	candles, stale, err := s.candles.Get(key, s.historyTTL, func() ([]domain.Candle, error) {
		return s.source.GetCandles(ctx, symbol, interval, limit)
	})

	view.Stale = stale
	if err != nil {
		view.Err = err.Error()
		s.logger.Warn("history fetch failed",
			zap.String("symbol", symbol), zap.Int("days", days),
			zap.Bool("stale_served", stale), zap.Error(err))
		if !stale {
			return view
		}
	}

	view.Points = candles
	return view
}

// FormatPrice renders a price the way the dashboard header shows it,
// e.g. "BTCUSDT = 67,890.123456 USDT".
func FormatPrice(coin domain.Coin, value float64) string {
	return fmt.Sprintf("%s = %s %s", coin.Symbol, humanize.CommafWithDigits(value, pricePrecision), coin.QuoteCoin)
}
