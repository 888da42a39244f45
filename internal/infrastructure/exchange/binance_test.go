package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *BinanceAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBinanceAdapter(srv.URL, 5*time.Second)
}

func TestGetCurrentPrice(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"67890.12345600"}`))
	})

	price, err := adapter.GetCurrentPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 67890.123456, price)
}

func TestGetCurrentPrice_HTTPError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	})

	_, err := adapter.GetCurrentPrice(context.Background(), "NOPEUSDT")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
	assert.Contains(t, apiErr.Snippet, "Invalid symbol")
}

func TestGetCurrentPrice_MalformedPayload(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"not-a-number"}`))
	})

	_, err := adapter.GetCurrentPrice(context.Background(), "BTCUSDT")
	require.Error(t, err)
}

func TestGetCandles(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "1h", r.URL.Query().Get("interval"))
		assert.Equal(t, "24", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			[1700000000000,"100.0","110.0","90.0","105.5","12.3",1700003599999,"0",1,"0","0","0"],
			[1700003600000,"105.5","112.0","101.0","108.25","9.8",1700007199999,"0",1,"0","0","0"]
		]`))
	})

	candles, err := adapter.GetCandles(context.Background(), "BTCUSDT", "1h", 24)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), candles[0].OpenTime)
	assert.Equal(t, 105.5, candles[0].Close)
	assert.Equal(t, 108.25, candles[1].Close)
	assert.True(t, candles[0].OpenTime.Before(candles[1].OpenTime))
}

func TestGetCandles_Empty(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := adapter.GetCandles(context.Background(), "BTCUSDT", "1h", 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestGetCandles_MalformedRow(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1700000000000,"100.0"]]`))
	})

	_, err := adapter.GetCandles(context.Background(), "BTCUSDT", "1h", 24)
	require.Error(t, err)
}

func TestSnippetTruncation(t *testing.T) {
	long := make([]byte, snippetLimit*2)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, snippet(long), snippetLimit)
	assert.Equal(t, "short", snippet([]byte("short")))
}
