package classify

import (
	"wallet-pnl/internal/interfaces"
)

// Side is the trade direction a swap resolves to.
type Side int

const (
	// Untracked swaps update balances but produce no trade record.
	Untracked Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNTRACKED"
	}
}

// Classification is the outcome of reading one swap event's two legs.
// Quantity and prices refer to the non-base token being bought or sold;
// ValueUSD is the base leg's value (cost for a buy, proceeds for a sell).
type Classification struct {
	Side     Side
	Token    string
	Quantity float64
	Price    float64
	ValueUSD float64
}

// Leg is one side of a swap with its USD value already resolved.
type Leg struct {
	Token    string
	Amount   float64
	ValueUSD float64
}

// Classifier decides swap direction using a pluggable base-asset detector.
type Classifier struct {
	detector interfaces.BaseAssetDetector
}

func New(detector interfaces.BaseAssetDetector) *Classifier {
	return &Classifier{detector: detector}
}

// Classify resolves a two-leg swap into a buy of leg2's token, a sell of
// leg1's token, or an untracked token-to-token exchange. When both or neither
// leg is a base asset there is no USD anchor, so no trade is recorded.
func (c *Classifier) Classify(leg1, leg2 Leg) Classification {
	base1 := c.detector.IsBase(leg1.Token)
	base2 := c.detector.IsBase(leg2.Token)

	switch {
	case base1 && !base2:
		return Classification{
			Side:     Buy,
			Token:    leg2.Token,
			Quantity: leg2.Amount,
			Price:    safeDiv(leg1.ValueUSD, leg2.Amount),
			ValueUSD: leg1.ValueUSD,
		}
	case base2 && !base1:
		return Classification{
			Side:     Sell,
			Token:    leg1.Token,
			Quantity: leg1.Amount,
			Price:    safeDiv(leg2.ValueUSD, leg1.Amount),
			ValueUSD: leg2.ValueUSD,
		}
	default:
		return Classification{Side: Untracked}
	}
}

// safeDiv is the declared degenerate-arithmetic behavior: a zero-quantity leg
// yields price 0 rather than a panic or an infinity, and the zero propagates.
func safeDiv(value, quantity float64) float64 {
	if quantity == 0 {
		return 0
	}
	return value / quantity
}

// SymbolSource resolves a token address to its display symbol. Satisfied by
// the registry.
type SymbolSource interface {
	Symbol(address string) string
}

// detector recognizes base assets by exact address match against the native
// allow-list, or by resolved symbol against the stablecoin set.
type detector struct {
	addresses map[string]bool
	symbols   map[string]bool
	source    SymbolSource
}

var _ interfaces.BaseAssetDetector = (*detector)(nil)

// NewDetector builds the default base-asset detector.
func NewDetector(baseAssets, stablecoinSymbols []string, source SymbolSource) interfaces.BaseAssetDetector {
	d := &detector{
		addresses: make(map[string]bool, len(baseAssets)),
		symbols:   make(map[string]bool, len(stablecoinSymbols)),
		source:    source,
	}
	for _, a := range baseAssets {
		d.addresses[a] = true
	}
	for _, s := range stablecoinSymbols {
		d.symbols[s] = true
	}
	return d
}

func (d *detector) IsBase(tokenAddress string) bool {
	if d.addresses[tokenAddress] {
		return true
	}
	if d.source != nil && d.symbols[d.source.Symbol(tokenAddress)] {
		return true
	}
	return false
}
