package analysis

import (
	"math"

	"wallet-pnl/internal/ledger"
	"wallet-pnl/internal/types"
)

// buildReport aggregates the final trade list and ledger into the report.
// Trades keep creation order; events are already time-sorted, so the date
// range reads straight off the ends.
func buildReport(events []types.SwapEvent, trades []types.Trade, l *ledger.Ledger) types.TradingReport {
	var (
		completed, open, winning, losing int
		realizedPnL                      float64
		totalBuyVolume, totalSellVolume  float64
		grossProfit, grossLoss           float64
	)

	for i := range trades {
		t := &trades[i]
		totalBuyVolume += t.BuyValueUSD
		if !t.IsComplete {
			open++
			continue
		}
		completed++
		realizedPnL += t.PnL
		totalSellVolume += t.SellValueUSD
		if t.PnL > 0 {
			winning++
			grossProfit += t.PnL
		} else {
			losing++
			grossLoss += math.Abs(t.PnL)
		}
	}

	profitFactor := 0.0
	switch {
	case grossLoss != 0:
		profitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		profitFactor = math.Inf(1)
	}

	winRate := 0.0
	if completed > 0 {
		winRate = float64(winning) / float64(completed) * 100
	}

	// Unrealized PnL is summed straight off the ledger, independent of the
	// trade list.
	unrealizedPnL := l.UnrealizedTotal()

	var startDate, endDate string
	if len(events) > 0 {
		startDate = types.ISODate(events[0].BlockTime)
		endDate = types.ISODate(events[len(events)-1].BlockTime)
	}

	return types.TradingReport{
		Summary: types.ReportSummary{
			TotalTradeCount:     len(trades),
			CompletedTradeCount: completed,
			OpenTradeCount:      open,
			WinningTradeCount:   winning,
			LosingTradeCount:    losing,
			TotalBuyVolumeUSD:   totalBuyVolume,
			TotalSellVolumeUSD:  totalSellVolume,
			RealizedPnL:         realizedPnL,
			UnrealizedPnL:       unrealizedPnL,
			TotalPnL:            realizedPnL + unrealizedPnL,
			ProfitFactor:        profitFactor,
			WinRate:             winRate,
			StartDate:           startDate,
			EndDate:             endDate,
		},
		TokenBalances: l.Balances(),
		Trades:        trades,
	}
}
