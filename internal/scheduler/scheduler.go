package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/JulianZulFont/AppDash-2/internal/domain"
	"github.com/JulianZulFont/AppDash-2/internal/usecase"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Broadcaster pushes refreshed view state to connected dashboard clients.
type Broadcaster interface {
	BroadcastPrices(views []usecase.PriceView)
	BroadcastCountdown(seconds int)
}

// Scheduler runs the independent refresh timers: a 1-second display tick, a
// price refresh warming the price cache for every catalog symbol, and a
// history refresh warming the candle caches. Jobs run on their own schedules
// and never gate each other; a failed fetch degrades to a stale or error view
// on the next broadcast.
type Scheduler struct {
	cron    *cron.Cron
	service *usecase.DashboardService
	hub     Broadcaster
	logger  *zap.Logger

	priceEvery   int // seconds
	historyEvery int // seconds
	fetchTimeout time.Duration

	ticks atomic.Int64
}

func New(service *usecase.DashboardService, hub Broadcaster, priceEvery, historyEvery int, fetchTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		service:      service,
		hub:          hub,
		logger:       logger,
		priceEvery:   priceEvery,
		historyEvery: historyEvery,
		fetchTimeout: fetchTimeout,
	}
}

// RegisterAll registers the display tick and both refresh jobs.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.cron.AddFunc("@every 1s", s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.priceEvery), s.priceTask); err != nil {
		return fmt.Errorf("register price task: %w", err)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.historyEvery), s.historyTask); err != nil {
		return fmt.Errorf("register history task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and runs both refresh tasks once so the
// first page load has data.
func (s *Scheduler) Start() {
	go s.priceTask()
	go s.historyTask()
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.Int("price_every_s", s.priceEvery),
		zap.Int("history_every_s", s.historyEvery))
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// CountdownSeconds reports the seconds remaining until the next price refresh.
func (s *Scheduler) CountdownSeconds() int {
	return usecase.Countdown(int(s.ticks.Load()), s.priceEvery)
}

func (s *Scheduler) tickTask() {
	s.ticks.Add(1)
	s.hub.BroadcastCountdown(s.CountdownSeconds())
}

func (s *Scheduler) priceTask() {
	views := make([]usecase.PriceView, 0, len(domain.Coins))
	for _, coin := range domain.Coins {
		view := s.quoteOne(coin.Symbol)
		if view.Err != "" {
			s.logger.Warn("price refresh degraded",
				zap.String("symbol", coin.Symbol),
				zap.Bool("stale", view.Stale),
				zap.String("error", view.Err))
		}
		views = append(views, view)
	}
	s.hub.BroadcastPrices(views)
}

// quoteOne runs a single price fetch under its own timeout so one slow
// symbol cannot starve the rest of the batch.
func (s *Scheduler) quoteOne(symbol string) usecase.PriceView {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()
	return s.service.Quote(ctx, symbol)
}

func (s *Scheduler) historyOne(symbol string, days int) usecase.ChartView {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()
	return s.service.History(ctx, symbol, days)
}

func (s *Scheduler) historyTask() {
	for _, coin := range domain.Coins {
		for _, days := range domain.Periods {
			view := s.historyOne(coin.Symbol, days)
			if view.Err != "" {
				s.logger.Warn("history refresh degraded",
					zap.String("symbol", coin.Symbol),
					zap.Int("days", days),
					zap.Bool("stale", view.Stale),
					zap.String("error", view.Err))
			}
		}
	}
}
