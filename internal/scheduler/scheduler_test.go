package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/JulianZulFont/AppDash-2/internal/domain"
	"github.com/JulianZulFont/AppDash-2/internal/usecase"
	"go.uber.org/zap"
)

type stubSource struct {
	price   float64
	candles []domain.Candle
}

func (s *stubSource) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	return s.price, nil
}

func (s *stubSource) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	return s.candles, nil
}

type recordingHub struct {
	prices     [][]usecase.PriceView
	countdowns []int
}

func (h *recordingHub) BroadcastPrices(views []usecase.PriceView) {
	h.prices = append(h.prices, views)
}

func (h *recordingHub) BroadcastCountdown(seconds int) {
	h.countdowns = append(h.countdowns, seconds)
}

func newTestScheduler(hub *recordingHub) *Scheduler {
	src := &stubSource{
		price:   50000,
		candles: []domain.Candle{{OpenTime: time.Now().UTC(), Close: 50000}},
	}
	service := usecase.NewDashboardService(src, time.Minute, 5*time.Minute, zap.NewNop())
	return New(service, hub, 60, 300, 5*time.Second, zap.NewNop())
}

func TestPriceTaskBroadcastsAllSymbols(t *testing.T) {
	hub := &recordingHub{}
	s := newTestScheduler(hub)

	s.priceTask()

	if len(hub.prices) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(hub.prices))
	}
	if len(hub.prices[0]) != len(domain.Coins) {
		t.Errorf("expected %d views, got %d", len(domain.Coins), len(hub.prices[0]))
	}
	for _, v := range hub.prices[0] {
		if v.Err != "" {
			t.Errorf("unexpected error for %s: %s", v.Symbol, v.Err)
		}
	}
}

func TestTickTaskCountdown(t *testing.T) {
	hub := &recordingHub{}
	s := newTestScheduler(hub)

	s.tickTask()
	if got := hub.countdowns[0]; got != 59 {
		t.Errorf("expected 59s after first tick, got %d", got)
	}

	for i := 0; i < 58; i++ {
		s.tickTask()
	}
	if got := s.CountdownSeconds(); got != 1 {
		t.Errorf("expected 1s at tick 59, got %d", got)
	}

	s.tickTask()
	if got := s.CountdownSeconds(); got != 60 {
		t.Errorf("expected wrap to 60s, got %d", got)
	}
}

func TestRegisterAll(t *testing.T) {
	s := newTestScheduler(&recordingHub{})
	if err := s.RegisterAll(); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
}
