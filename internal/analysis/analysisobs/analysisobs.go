package analysisobs

import (
	"context"
	"time"

	"wallet-pnl/internal/interfaces"
	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/trace"
	"wallet-pnl/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(a interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: a,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, data []byte) (*types.TradingReport, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.Analyze")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting trading analysis",
		"payload_bytes", len(data),
	)

	report, err := oa.analyzer.Analyze(ctx, data)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Trading analysis failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Trading analysis completed",
		"total_trades", report.Summary.TotalTradeCount,
		"completed_trades", report.Summary.CompletedTradeCount,
		"realized_pnl", report.Summary.RealizedPnL,
		"unrealized_pnl", report.Summary.UnrealizedPnL,
		"win_rate", report.Summary.WinRate,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
