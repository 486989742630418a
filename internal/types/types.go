package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityTokenSwap is the only activity type the analyzer processes.
const ActivityTokenSwap = "ACTIVITY_TOKEN_SWAP"

// AmountInfo carries the two legs of a swap as they arrive from the indexer.
// Raw amounts are kept as decimals because indexers emit them either as JSON
// numbers or as strings, and they can exceed float64 integer precision.
type AmountInfo struct {
	Token1         string          `json:"token1"`
	Token1Decimals int             `json:"token1_decimals"`
	Amount1        decimal.Decimal `json:"amount1"`
	Token2         string          `json:"token2"`
	Token2Decimals int             `json:"token2_decimals"`
	Amount2        decimal.Decimal `json:"amount2"`
}

// SwapEvent is one raw transaction record from the data source. Immutable.
type SwapEvent struct {
	BlockID      int64      `json:"block_id"`
	TransID      string     `json:"trans_id"`
	BlockTime    int64      `json:"block_time"`
	ActivityType string     `json:"activity_type"`
	FromAddress  string     `json:"from_address"`
	Sources      []string   `json:"sources"`
	Platform     []string   `json:"platform"`
	AmountInfo   AmountInfo `json:"amount_info"`
	Value        float64    `json:"value"`
}

// NormalizedAmount1 returns leg 1's amount scaled by its decimals.
func (e *SwapEvent) NormalizedAmount1() float64 {
	return e.AmountInfo.Amount1.Shift(int32(-e.AmountInfo.Token1Decimals)).InexactFloat64()
}

// NormalizedAmount2 returns leg 2's amount scaled by its decimals.
func (e *SwapEvent) NormalizedAmount2() float64 {
	return e.AmountInfo.Amount2.Shift(int32(-e.AmountInfo.Token2Decimals)).InexactFloat64()
}

// PlatformLabel returns the first platform tag or "unknown".
func (e *SwapEvent) PlatformLabel() string {
	if len(e.Platform) > 0 && e.Platform[0] != "" {
		return e.Platform[0]
	}
	return "unknown"
}

// TokenInfo describes one token ever seen by an analysis run. Owned by the
// registry; the price field is the only part mutated after creation.
type TokenInfo struct {
	Address  string  `json:"token_address"`
	Name     string  `json:"token_name"`
	Symbol   string  `json:"token_symbol"`
	Decimals int     `json:"token_decimals"`
	PriceUSD float64 `json:"price_usdt"`
}

// TokenBalance is the running per-token accounting row.
type TokenBalance struct {
	Token           string  `json:"token"`
	Symbol          string  `json:"symbol"`
	Balance         float64 `json:"balance"`
	AvgBuyPrice     float64 `json:"avgBuyPrice"`
	TotalBought     float64 `json:"totalBought"`
	TotalSold       float64 `json:"totalSold"`
	TotalBuyValue   float64 `json:"totalBuyValue"`
	TotalSellValue  float64 `json:"totalSellValue"`
	CurrentPriceUSD float64 `json:"currentPriceUSD"`
	RealizedPnL     float64 `json:"realizedPnL"`
	UnrealizedPnL   float64 `json:"unrealizedPnL"`
	TotalPnL        float64 `json:"totalPnL"`
}

// Trade is one buy lot tracked for FIFO matching. Created by a classified buy
// and mutated in place as later sells fill it. Never removed once created.
type Trade struct {
	ID            string  `json:"id"`
	BuyTimestamp  int64   `json:"buyTimestamp"`
	SellTimestamp int64   `json:"sellTimestamp,omitempty"`
	BuyDate       string  `json:"buyDate"`
	SellDate      string  `json:"sellDate,omitempty"`
	Token         string  `json:"token"`
	TokenSymbol   string  `json:"tokenSymbol"`
	BoughtAmount  float64 `json:"boughtAmount"`
	SoldAmount    float64 `json:"soldAmount"`
	BuyPrice      float64 `json:"buyPrice"`
	SellPrice     float64 `json:"sellPrice,omitempty"`
	BuyValueUSD   float64 `json:"buyValueUSD"`
	SellValueUSD  float64 `json:"sellValueUSD,omitempty"`
	PnL           float64 `json:"pnl"`
	PnLPercentage float64 `json:"pnlPercentage"`
	IsComplete    bool    `json:"isComplete"`
	Platform      string  `json:"platform"`
}

// ReportSummary holds the aggregate statistics of one analysis run.
type ReportSummary struct {
	TotalTradeCount     int     `json:"totalTradeCount"`
	CompletedTradeCount int     `json:"completedTradeCount"`
	OpenTradeCount      int     `json:"openTradeCount"`
	WinningTradeCount   int     `json:"winningTradeCount"`
	LosingTradeCount    int     `json:"losingTradeCount"`
	TotalBuyVolumeUSD   float64 `json:"totalBuyVolumeUSD"`
	TotalSellVolumeUSD  float64 `json:"totalSellVolumeUSD"`
	RealizedPnL         float64 `json:"realizedPnL"`
	UnrealizedPnL       float64 `json:"unrealizedPnL"`
	TotalPnL            float64 `json:"totalPnL"`
	ProfitFactor        float64 `json:"profitFactor"`
	WinRate             float64 `json:"winRate"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
}

// TradingReport is the immutable output of an analysis run. Trades keep
// creation order; sorting and filtering belong to the presentation layer.
type TradingReport struct {
	Summary       ReportSummary  `json:"summary"`
	TokenBalances []TokenBalance `json:"tokenBalances"`
	Trades        []Trade        `json:"trades"`
}

// ISODate renders a unix-seconds timestamp the way the report dates are
// serialized everywhere (RFC 3339 UTC with millisecond precision).
func ISODate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02T15:04:05.000Z")
}
