package view

import (
	"math"
	"sort"

	"wallet-pnl/internal/types"
)

// Presentation helpers over an already-computed report. Everything here works
// on copies; the report itself is never reordered.

// TradeFilter narrows the trade list. Zero values mean "no constraint";
// Start/End are unix-seconds bounds on the buy timestamp.
type TradeFilter struct {
	OnlyCompleted bool
	OnlyWinning   bool
	Token         string
	Start, End    int64
}

func (f TradeFilter) matches(t *types.Trade) bool {
	if f.OnlyCompleted && !t.IsComplete {
		return false
	}
	if f.OnlyWinning && t.PnL <= 0 {
		return false
	}
	if f.Token != "" && t.Token != f.Token {
		return false
	}
	if f.Start != 0 && t.BuyTimestamp < f.Start {
		return false
	}
	if f.End != 0 && t.BuyTimestamp > f.End {
		return false
	}
	return true
}

// FilterTrades returns the trades passing the filter, in input order.
func FilterTrades(trades []types.Trade, f TradeFilter) []types.Trade {
	out := make([]types.Trade, 0, len(trades))
	for i := range trades {
		if f.matches(&trades[i]) {
			out = append(out, trades[i])
		}
	}
	return out
}

// Sortable trade columns.
const (
	ColBuyTimestamp  = "buyTimestamp"
	ColSellTimestamp = "sellTimestamp"
	ColToken         = "token"
	ColBoughtAmount  = "boughtAmount"
	ColBuyPrice      = "buyPrice"
	ColSellPrice     = "sellPrice"
	ColPnL           = "pnl"
	ColPnLPercentage = "pnlPercentage"
)

// SortTrades sorts a copy of the trades by the given column. Unknown columns
// fall back to the buy timestamp.
func SortTrades(trades []types.Trade, column string, ascending bool) []types.Trade {
	out := make([]types.Trade, len(trades))
	copy(out, trades)

	if column == ColToken {
		sort.SliceStable(out, func(i, j int) bool {
			if ascending {
				return out[i].TokenSymbol < out[j].TokenSymbol
			}
			return out[i].TokenSymbol > out[j].TokenSymbol
		})
		return out
	}

	key := func(t *types.Trade) float64 {
		switch column {
		case ColSellTimestamp:
			return float64(t.SellTimestamp)
		case ColBoughtAmount:
			return t.BoughtAmount
		case ColBuyPrice:
			return t.BuyPrice
		case ColSellPrice:
			return t.SellPrice
		case ColPnL:
			return t.PnL
		case ColPnLPercentage:
			return t.PnLPercentage
		default:
			return float64(t.BuyTimestamp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return key(&out[i]) < key(&out[j])
		}
		return key(&out[i]) > key(&out[j])
	})
	return out
}

// Page slices out one page (1-based). An out-of-range page is empty.
func Page(trades []types.Trade, page, pageSize int) []types.Trade {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(trades) {
		return nil
	}
	end := start + pageSize
	if end > len(trades) {
		end = len(trades)
	}
	return trades[start:end]
}

// TotalPages returns the page count for the given page size.
func TotalPages(n, pageSize int) int {
	if pageSize < 1 || n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// OrderedTokenBalances returns balances sorted by absolute total PnL,
// largest first.
func OrderedTokenBalances(balances []types.TokenBalance) []types.TokenBalance {
	out := make([]types.TokenBalance, len(balances))
	copy(out, balances)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].TotalPnL) > math.Abs(out[j].TotalPnL)
	})
	return out
}
