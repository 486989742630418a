package analysis

import (
	"context"
	"sort"

	"wallet-pnl/internal/classify"
	"wallet-pnl/internal/interfaces"
	"wallet-pnl/internal/ledger"
	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/matcher"
	"wallet-pnl/internal/registry"
	"wallet-pnl/internal/store"
	"wallet-pnl/internal/types"
)

// Service builds trading reports from raw transaction payloads. It carries
// only configuration; every Analyze call runs on a fresh analysis context, so
// concurrent runs never share state.
type Service struct {
	cfg      *store.Config
	resolver interfaces.MetadataResolver
}

var _ interfaces.Analyzer = (*Service)(nil)

func New(cfg *store.Config) *Service {
	return &Service{cfg: cfg}
}

// NewWithResolver overrides the default address-derived metadata heuristics,
// e.g. with a resolver backed by a real metadata service.
func NewWithResolver(cfg *store.Config, resolver interfaces.MetadataResolver) *Service {
	return &Service{cfg: cfg, resolver: resolver}
}

// run is the per-call analysis context. All mutable state of one analysis
// lives here and is discarded when Analyze returns.
type run struct {
	reg        *registry.Registry
	ledger     *ledger.Ledger
	matcher    *matcher.Matcher
	classifier *classify.Classifier
}

func (s *Service) newRun() *run {
	reg := registry.New(s.resolver)
	for _, seed := range s.cfg.Registry.Seeds {
		reg.Seed(types.TokenInfo{
			Address:  seed.Address,
			Name:     seed.Name,
			Symbol:   seed.Symbol,
			Decimals: seed.Decimals,
			PriceUSD: seed.PriceUSD,
		})
	}

	detector := classify.NewDetector(
		s.cfg.Classification.BaseAssets,
		s.cfg.Classification.StablecoinSymbols,
		reg,
	)

	return &run{
		reg:        reg,
		ledger:     ledger.New(reg),
		matcher:    matcher.New(),
		classifier: classify.New(detector),
	}
}

// Analyze decodes the payload, folds every swap event through the registry,
// ledger and matcher, and aggregates the final report. Per-record problems
// are absorbed; only an unusable payload fails.
func (s *Service) Analyze(ctx context.Context, data []byte) (*types.TradingReport, error) {
	events, err := decodeEvents(ctx, data)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Payload decoded", "records", len(events))

	// Stable sort keeps insertion order on identical timestamps, which is the
	// FIFO tie-break downstream.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].BlockTime < events[j].BlockTime
	})

	r := s.newRun()
	r.populateRegistry(ctx, events)

	processed := 0
	for i := range events {
		if events[i].ActivityType != types.ActivityTokenSwap {
			continue
		}
		r.processSwap(ctx, &events[i])
		processed++
	}
	logger.Info(ctx, "Events processed", "processed", processed, "total", len(events), "tokens", r.reg.Len())

	// Prices estimated mid-run must reach every balance row.
	r.ledger.Recompute()

	report := buildReport(events, r.matcher.Trades(), r.ledger)
	return &report, nil
}

// populateRegistry is the two-pass token discovery from the raw events: first
// every token gets an entry, then prices are inferred from events carrying a
// USD notional. Inference order follows event time order, so it is best
// effort and order dependent for token-to-token swaps.
func (r *run) populateRegistry(ctx context.Context, events []types.SwapEvent) {
	for i := range events {
		e := &events[i]
		if e.ActivityType != types.ActivityTokenSwap {
			continue
		}
		r.reg.Ensure(e.AmountInfo.Token1, e.AmountInfo.Token1Decimals)
		r.reg.Ensure(e.AmountInfo.Token2, e.AmountInfo.Token2Decimals)
	}

	for i := range events {
		e := &events[i]
		if e.ActivityType != types.ActivityTokenSwap || e.Value <= 0 {
			continue
		}
		r.reg.EstimateFromEvent(e)
	}

	logger.Debug(ctx, "Registry populated", "tokens", r.reg.Len())
}

// processSwap folds one swap event: both legs always hit the ledger (leg 1
// outgoing, leg 2 incoming), then the classified direction drives the trade
// matcher.
func (r *run) processSwap(ctx context.Context, e *types.SwapEvent) {
	amt1 := e.NormalizedAmount1()
	amt2 := e.NormalizedAmount2()

	value1 := amt1 * r.reg.PriceUSD(e.AmountInfo.Token1)
	value2 := amt2 * r.reg.PriceUSD(e.AmountInfo.Token2)

	r.ledger.ApplyLeg(e.AmountInfo.Token1, -amt1, value1)
	r.ledger.ApplyLeg(e.AmountInfo.Token2, amt2, value2)

	c := r.classifier.Classify(
		classify.Leg{Token: e.AmountInfo.Token1, Amount: amt1, ValueUSD: value1},
		classify.Leg{Token: e.AmountInfo.Token2, Amount: amt2, ValueUSD: value2},
	)

	switch c.Side {
	case classify.Buy:
		r.matcher.RecordBuy(types.Trade{
			ID:           e.TransID,
			BuyTimestamp: e.BlockTime,
			BuyDate:      types.ISODate(e.BlockTime),
			Token:        c.Token,
			TokenSymbol:  r.reg.Symbol(c.Token),
			BoughtAmount: c.Quantity,
			BuyPrice:     c.Price,
			BuyValueUSD:  c.ValueUSD,
			Platform:     e.PlatformLabel(),
		})
	case classify.Sell:
		r.matcher.RecordSell(ctx, matcher.SellInfo{
			Token:         c.Token,
			SoldAmount:    c.Quantity,
			SellTimestamp: e.BlockTime,
			SellPrice:     c.Price,
			SellValueUSD:  c.ValueUSD,
		})
	default:
		// Token-to-token swap with no USD anchor: balances updated above,
		// nothing to match.
		logger.Debug(ctx, "Untracked swap", "trans_id", e.TransID,
			"token1", e.AmountInfo.Token1, "token2", e.AmountInfo.Token2)
	}
}
