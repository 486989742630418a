package classify

import (
	"testing"
)

const (
	solMint   = "So11111111111111111111111111111111111111112"
	usdcMint  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	memeMint  = "MemeTokenAddress1"
	otherMint = "MemeTokenAddress2"
)

type staticSymbols map[string]string

func (s staticSymbols) Symbol(address string) string { return s[address] }

func newTestClassifier() *Classifier {
	det := NewDetector(
		[]string{solMint},
		[]string{"USDC", "USDT"},
		staticSymbols{usdcMint: "USDC", memeMint: "MEME", otherMint: "MEM2"},
	)
	return New(det)
}

func TestClassifyBuy(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: solMint, Amount: 1, ValueUSD: 100},
		Leg{Token: memeMint, Amount: 1000, ValueUSD: 90},
	)

	if got.Side != Buy {
		t.Fatalf("expected Buy, got %s", got.Side)
	}
	if got.Token != memeMint {
		t.Errorf("expected token %s, got %s", memeMint, got.Token)
	}
	if got.Quantity != 1000 {
		t.Errorf("expected quantity 1000, got %f", got.Quantity)
	}
	if got.Price != 0.1 {
		t.Errorf("expected price 0.1, got %f", got.Price)
	}
	if got.ValueUSD != 100 {
		t.Errorf("expected cost 100 (base leg value), got %f", got.ValueUSD)
	}
}

func TestClassifySell(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: memeMint, Amount: 500, ValueUSD: 55},
		Leg{Token: solMint, Amount: 0.6, ValueUSD: 60},
	)

	if got.Side != Sell {
		t.Fatalf("expected Sell, got %s", got.Side)
	}
	if got.Token != memeMint {
		t.Errorf("expected token %s, got %s", memeMint, got.Token)
	}
	if got.Quantity != 500 {
		t.Errorf("expected quantity 500, got %f", got.Quantity)
	}
	if got.Price != 0.12 {
		t.Errorf("expected price 0.12, got %f", got.Price)
	}
	if got.ValueUSD != 60 {
		t.Errorf("expected proceeds 60, got %f", got.ValueUSD)
	}
}

func TestClassifyStablecoinBySymbol(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: usdcMint, Amount: 100, ValueUSD: 100},
		Leg{Token: memeMint, Amount: 200, ValueUSD: 0},
	)
	if got.Side != Buy {
		t.Errorf("expected stablecoin leg to classify as Buy, got %s", got.Side)
	}
}

func TestClassifyUntrackedTokenToToken(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: memeMint, Amount: 100, ValueUSD: 10},
		Leg{Token: otherMint, Amount: 200, ValueUSD: 10},
	)
	if got.Side != Untracked {
		t.Errorf("expected Untracked, got %s", got.Side)
	}
}

func TestClassifyBothBaseUntracked(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: solMint, Amount: 1, ValueUSD: 100},
		Leg{Token: usdcMint, Amount: 100, ValueUSD: 100},
	)
	if got.Side != Untracked {
		t.Errorf("expected base-to-base swap to be Untracked, got %s", got.Side)
	}
}

func TestClassifyZeroQuantityPrice(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(
		Leg{Token: solMint, Amount: 1, ValueUSD: 100},
		Leg{Token: memeMint, Amount: 0, ValueUSD: 0},
	)
	if got.Side != Buy {
		t.Fatalf("expected Buy, got %s", got.Side)
	}
	if got.Price != 0 {
		t.Errorf("expected zero-quantity price to be 0, got %f", got.Price)
	}
}
