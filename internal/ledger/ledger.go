package ledger

import (
	"math"

	"wallet-pnl/internal/types"
)

// PriceSource resolves a token's display symbol and current USD mark price.
// Satisfied by the registry.
type PriceSource interface {
	Symbol(address string) string
	PriceUSD(address string) float64
}

// Ledger keeps the running per-token balance accounting. One instance per
// analysis run; rows are created on first sighting and mutated for the life
// of the run, never deleted.
type Ledger struct {
	balances map[string]*types.TokenBalance
	order    []string
	prices   PriceSource
}

func New(prices PriceSource) *Ledger {
	return &Ledger{
		balances: make(map[string]*types.TokenBalance),
		prices:   prices,
	}
}

// ApplyLeg folds one signed, normalized leg amount into the token's row.
// Incoming legs (amount > 0) accumulate the cost basis; outgoing legs
// realize PnL against the current average buy price. The balance itself is
// updated unconditionally and may go negative when sells exceed tracked buys.
func (l *Ledger) ApplyLeg(token string, signedAmount, usdValue float64) {
	b, ok := l.balances[token]
	if !ok {
		b = &types.TokenBalance{
			Token:           token,
			Symbol:          l.prices.Symbol(token),
			CurrentPriceUSD: l.prices.PriceUSD(token),
		}
		l.balances[token] = b
		l.order = append(l.order, token)
	}

	if signedAmount > 0 {
		b.TotalBought += signedAmount
		b.TotalBuyValue += usdValue
		b.AvgBuyPrice = b.TotalBuyValue / b.TotalBought
	} else if signedAmount < 0 {
		abs := math.Abs(signedAmount)
		b.TotalSold += abs
		b.TotalSellValue += usdValue

		// Cost basis at the current average buy price; later buys do not
		// retroactively adjust already-realized PnL.
		if b.TotalBought > 0 {
			b.RealizedPnL += usdValue - abs*b.AvgBuyPrice
		}
	}

	b.Balance += signedAmount
	l.refreshUnrealized(b)
}

// refreshUnrealized recomputes the mark-to-market PnL from scratch. A zero or
// negative balance, or an unknown mark price, carries no unrealized PnL.
func (l *Ledger) refreshUnrealized(b *types.TokenBalance) {
	if b.Balance > 0 && b.CurrentPriceUSD > 0 {
		b.UnrealizedPnL = b.Balance * (b.CurrentPriceUSD - b.AvgBuyPrice)
	} else {
		b.UnrealizedPnL = 0
	}
	b.TotalPnL = b.RealizedPnL + b.UnrealizedPnL
}

// Recompute refreshes every row's mark price from the price source and
// recalculates unrealized PnL. Run once after all events are folded, since
// price estimation may have filled in prices mid-run.
func (l *Ledger) Recompute() {
	for _, token := range l.order {
		b := l.balances[token]
		b.CurrentPriceUSD = l.prices.PriceUSD(token)
		l.refreshUnrealized(b)
	}
}

// Get returns the row for a token, or nil.
func (l *Ledger) Get(token string) *types.TokenBalance {
	return l.balances[token]
}

// Balances returns copies of all rows in first-sighting order.
func (l *Ledger) Balances() []types.TokenBalance {
	out := make([]types.TokenBalance, 0, len(l.order))
	for _, token := range l.order {
		out = append(out, *l.balances[token])
	}
	return out
}

// UnrealizedTotal sums unrealized PnL across all rows.
func (l *Ledger) UnrealizedTotal() float64 {
	var sum float64
	for _, token := range l.order {
		sum += l.balances[token].UnrealizedPnL
	}
	return sum
}
