package ledger

import (
	"math"
	"testing"
)

type staticPrices struct {
	prices map[string]float64
}

func (s *staticPrices) Symbol(address string) string { return address }
func (s *staticPrices) PriceUSD(address string) float64 {
	return s.prices[address]
}

const meme = "MemeTokenAddress1"

func TestBuyAccumulatesWeightedAverage(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	l.ApplyLeg(meme, 1000, 100)
	l.ApplyLeg(meme, 500, 100)

	b := l.Get(meme)
	if b == nil {
		t.Fatal("expected balance row")
	}
	if b.TotalBought != 1500 {
		t.Errorf("expected totalBought 1500, got %f", b.TotalBought)
	}
	if b.TotalBuyValue != 200 {
		t.Errorf("expected totalBuyValue 200, got %f", b.TotalBuyValue)
	}
	want := 200.0 / 1500.0
	if math.Abs(b.AvgBuyPrice-want) > 1e-12 {
		t.Errorf("expected avgBuyPrice %f, got %f", want, b.AvgBuyPrice)
	}
}

func TestSellRealizesAgainstCurrentAverage(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	l.ApplyLeg(meme, 1000, 100) // avg 0.1
	l.ApplyLeg(meme, -500, 60)  // cost basis 50, proceeds 60

	b := l.Get(meme)
	if math.Abs(b.RealizedPnL-10) > 1e-12 {
		t.Errorf("expected realizedPnL 10, got %f", b.RealizedPnL)
	}
	if b.TotalSold != 500 {
		t.Errorf("expected totalSold 500, got %f", b.TotalSold)
	}
	if b.Balance != 500 {
		t.Errorf("expected balance 500, got %f", b.Balance)
	}
}

func TestSellWithoutBuysRealizesNothing(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	l.ApplyLeg(meme, -300, 30)

	b := l.Get(meme)
	if b.RealizedPnL != 0 {
		t.Errorf("expected realizedPnL 0, got %f", b.RealizedPnL)
	}
	if b.Balance != -300 {
		t.Errorf("expected negative balance to be tolerated, got %f", b.Balance)
	}
	if b.TotalSellValue != 30 {
		t.Errorf("expected totalSellValue 30, got %f", b.TotalSellValue)
	}
}

func TestLaterBuysDoNotAdjustRealizedPnL(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	l.ApplyLeg(meme, 1000, 100) // avg 0.1
	l.ApplyLeg(meme, -1000, 150)
	realized := l.Get(meme).RealizedPnL

	// A pricier buy after the sell must leave realized PnL unchanged.
	l.ApplyLeg(meme, 100, 100)
	if got := l.Get(meme).RealizedPnL; got != realized {
		t.Errorf("realizedPnL changed after later buy: %f -> %f", realized, got)
	}
}

func TestUnrealizedRecomputedFromMark(t *testing.T) {
	prices := &staticPrices{prices: map[string]float64{meme: 0.2}}
	l := New(prices)

	l.ApplyLeg(meme, 1000, 100) // avg 0.1, mark 0.2

	b := l.Get(meme)
	if math.Abs(b.UnrealizedPnL-100) > 1e-12 {
		t.Errorf("expected unrealizedPnL 100, got %f", b.UnrealizedPnL)
	}
	if math.Abs(b.TotalPnL-100) > 1e-12 {
		t.Errorf("expected totalPnL 100, got %f", b.TotalPnL)
	}

	// Price learned later must flow in via Recompute.
	prices.prices[meme] = 0.3
	l.Recompute()
	if got := l.Get(meme).UnrealizedPnL; math.Abs(got-200) > 1e-12 {
		t.Errorf("expected unrealizedPnL 200 after recompute, got %f", got)
	}
}

func TestNoUnrealizedOnNonPositiveBalance(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{meme: 0.2}})

	l.ApplyLeg(meme, 1000, 100)
	l.ApplyLeg(meme, -1000, 200)

	b := l.Get(meme)
	if b.UnrealizedPnL != 0 {
		t.Errorf("expected no unrealizedPnL on zero balance, got %f", b.UnrealizedPnL)
	}
}

func TestBalanceConservation(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	legs := []float64{1000, -250, 500, -1500, 42}
	var sum float64
	for _, amt := range legs {
		l.ApplyLeg(meme, amt, 0)
		sum += amt
	}

	if b := l.Get(meme); math.Abs(b.Balance-sum) > 1e-9 {
		t.Errorf("expected balance %f, got %f", sum, b.Balance)
	}
}

func TestBalancesKeepFirstSightingOrder(t *testing.T) {
	l := New(&staticPrices{prices: map[string]float64{}})

	l.ApplyLeg("TokenB", 1, 0)
	l.ApplyLeg("TokenA", 1, 0)
	l.ApplyLeg("TokenB", 1, 0)

	out := l.Balances()
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Token != "TokenB" || out[1].Token != "TokenA" {
		t.Errorf("expected first-sighting order [TokenB TokenA], got [%s %s]", out[0].Token, out[1].Token)
	}
}
