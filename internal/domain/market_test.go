package domain

import "testing"

func TestPeriodSampling(t *testing.T) {
	cases := []struct {
		days     int
		interval string
		limit    int
	}{
		{1, "1h", 24},
		{7, "1h", 168},
		{30, "4h", 180},
		{200, "4h", 1000}, // hard cap
	}

	for _, c := range cases {
		interval, limit := PeriodSampling(c.days)
		if interval != c.interval || limit != c.limit {
			t.Errorf("PeriodSampling(%d) = (%s, %d), want (%s, %d)",
				c.days, interval, limit, c.interval, c.limit)
		}
	}
}

func TestLookupCoin(t *testing.T) {
	coin, ok := LookupCoin("BTCUSDT")
	if !ok {
		t.Fatal("BTCUSDT should be in the catalog")
	}
	if coin.QuoteCoin != "USDT" {
		t.Errorf("expected quote coin USDT, got %s", coin.QuoteCoin)
	}

	if _, ok := LookupCoin("NOPEUSDT"); ok {
		t.Error("NOPEUSDT should not be in the catalog")
	}
}

func TestValidPeriod(t *testing.T) {
	for _, p := range Periods {
		if !ValidPeriod(p) {
			t.Errorf("period %d should be valid", p)
		}
	}
	if ValidPeriod(14) {
		t.Error("period 14 should not be valid")
	}
}
