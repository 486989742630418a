package matcher

import (
	"context"
	"sort"

	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/types"
)

// Epsilon bounds float comparisons on normalized amounts. A lot whose sold
// amount is within Epsilon of its bought amount counts as fully closed.
const Epsilon = 1e-9

// Matcher holds the append-only arena of buy lots and fills them FIFO as
// sells arrive. Lots are addressed by their stable arena index, so partial
// fills mutate in place without invalidating other references. Closed lots
// stay in the arena forever.
type Matcher struct {
	trades []*types.Trade
}

func New() *Matcher {
	return &Matcher{}
}

// RecordBuy appends a new open lot.
func (m *Matcher) RecordBuy(t types.Trade) {
	cp := t
	m.trades = append(m.trades, &cp)
}

// SellInfo carries the aggregate fields of one classified sell event.
type SellInfo struct {
	Token         string
	SoldAmount    float64
	SellTimestamp int64
	SellPrice     float64
	SellValueUSD  float64
}

// RecordSell consumes open lots of the token first-in-first-out. Only lots
// bought strictly before the sell qualify; ties on buy timestamp keep arena
// order. Cost and proceeds are attributed proportionally to each fill. The
// sell's scalar fields (timestamp, price) are written onto every touched lot
// as-is, so a multi-lot sell stamps the same values on each lot; this mirrors
// the per-fill attribution kept in PnL and is a documented simplification.
//
// Residue that no lot can absorb is dropped from trade accounting with a
// warning. RecordSell never fails: the raw leg already reached the ledger.
func (m *Matcher) RecordSell(ctx context.Context, sell SellInfo) {
	candidates := m.openLotsBefore(sell.Token, sell.SellTimestamp)
	if len(candidates) == 0 {
		logger.Anomaly(ctx, sell.Token, "SELL_WITHOUT_BUY",
			"sold_amount", sell.SoldAmount,
			"sell_timestamp", sell.SellTimestamp,
		)
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return m.trades[candidates[i]].BuyTimestamp < m.trades[candidates[j]].BuyTimestamp
	})

	remaining := sell.SoldAmount
	for _, idx := range candidates {
		if remaining <= 0 {
			break
		}
		t := m.trades[idx]

		available := t.BoughtAmount - t.SoldAmount
		if available <= 0 {
			continue
		}

		fill := available
		if remaining < fill {
			fill = remaining
		}

		buyValueForFill := t.BuyValueUSD * (fill / t.BoughtAmount)
		sellValueForFill := sell.SellValueUSD * (fill / sell.SoldAmount)

		t.SoldAmount += fill
		t.SellTimestamp = sell.SellTimestamp
		t.SellDate = types.ISODate(sell.SellTimestamp)
		t.SellPrice = sell.SellPrice
		t.SellValueUSD = sellValueForFill
		t.IsComplete = t.SoldAmount >= t.BoughtAmount-Epsilon
		t.PnL = sellValueForFill - buyValueForFill
		t.PnLPercentage = t.PnL / buyValueForFill * 100

		remaining -= fill
	}

	if remaining > Epsilon {
		logger.Anomaly(ctx, sell.Token, "SELL_EXCEEDS_BUYS",
			"excess_amount", remaining,
			"sold_amount", sell.SoldAmount,
			"sell_timestamp", sell.SellTimestamp,
		)
	}
}

// openLotsBefore returns arena indices of lots for the token that are still
// open and were bought before the given timestamp. A sell cannot match a
// future buy.
func (m *Matcher) openLotsBefore(token string, ts int64) []int {
	var out []int
	for i, t := range m.trades {
		if t.Token == token && !t.IsComplete && t.BuyTimestamp < ts {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the number of lots in the arena.
func (m *Matcher) Len() int {
	return len(m.trades)
}

// At returns the lot at a stable arena index, or nil.
func (m *Matcher) At(idx int) *types.Trade {
	if idx < 0 || idx >= len(m.trades) {
		return nil
	}
	return m.trades[idx]
}

// Trades returns copies of all lots in creation order.
func (m *Matcher) Trades() []types.Trade {
	out := make([]types.Trade, 0, len(m.trades))
	for _, t := range m.trades {
		out = append(out, *t)
	}
	return out
}
