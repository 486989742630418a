package interfaces

import (
	"context"

	"wallet-pnl/internal/types"
)

// Analyzer turns raw transaction payloads into a trading report.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte) (*types.TradingReport, error)
}
