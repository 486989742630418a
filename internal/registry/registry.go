package registry

import (
	"wallet-pnl/internal/interfaces"
	"wallet-pnl/internal/types"
)

// Registry owns every TokenInfo of one analysis run. Entries are created
// lazily on first sighting and never deleted; only the price field is mutated
// afterwards, and only from zero.
type Registry struct {
	tokens   map[string]*types.TokenInfo
	native   map[string]bool
	resolver interfaces.MetadataResolver
}

func New(resolver interfaces.MetadataResolver) *Registry {
	if resolver == nil {
		resolver = NewAddressResolver()
	}
	return &Registry{
		tokens:   make(map[string]*types.TokenInfo),
		native:   make(map[string]bool),
		resolver: resolver,
	}
}

// Seed inserts a pre-populated entry and marks it as a native base asset.
// Seeds overwrite nothing: a seeded address is only recorded once.
func (r *Registry) Seed(info types.TokenInfo) {
	if _, ok := r.tokens[info.Address]; !ok {
		cp := info
		r.tokens[info.Address] = &cp
	}
	r.native[info.Address] = true
}

// Ensure inserts a default entry for the address iff absent. Idempotent; an
// existing entry, seeded or estimated, is left untouched.
func (r *Registry) Ensure(address string, decimals int) {
	if _, ok := r.tokens[address]; ok {
		return
	}
	r.tokens[address] = &types.TokenInfo{
		Address:  address,
		Name:     r.resolver.NameFor(address),
		Symbol:   r.resolver.SymbolFor(address),
		Decimals: decimals,
		PriceUSD: 0,
	}
}

// Get returns the entry for the address, or nil.
func (r *Registry) Get(address string) *types.TokenInfo {
	return r.tokens[address]
}

// PriceUSD returns the stored price or 0 when unknown.
func (r *Registry) PriceUSD(address string) float64 {
	if info, ok := r.tokens[address]; ok {
		return info.PriceUSD
	}
	return 0
}

// Symbol returns the display symbol, deriving one if the token was never seen.
func (r *Registry) Symbol(address string) string {
	if info, ok := r.tokens[address]; ok {
		return info.Symbol
	}
	return r.resolver.SymbolFor(address)
}

// IsNative reports whether the address is one of the seeded native assets.
func (r *Registry) IsNative(address string) bool {
	return r.native[address]
}

// Len returns the number of known tokens.
func (r *Registry) Len() int {
	return len(r.tokens)
}

// EstimatePrice sets the token's price to referencePriceUSD * referenceAmount
// / ownAmount, but only while the stored price is exactly 0. Pre-seeded and
// previously estimated prices are never overwritten.
func (r *Registry) EstimatePrice(address string, referencePriceUSD, referenceAmount, ownAmount float64) {
	info, ok := r.tokens[address]
	if !ok || info.PriceUSD != 0 {
		return
	}
	info.PriceUSD = referencePriceUSD * referenceAmount / ownAmount
}

// SetPrice overwrites the stored price unconditionally if the entry exists.
// Used only when a price comes from an authoritative lookup, not inference.
func (r *Registry) SetPrice(address string, priceUSD float64) {
	if info, ok := r.tokens[address]; ok {
		info.PriceUSD = priceUSD
	}
}

// EstimateFromEvent infers still-unknown token prices from one swap event.
// A native leg prices the opposite leg through the amount ratio; failing
// that, the event's USD notional prices both legs. Inference is order
// dependent and best effort.
func (r *Registry) EstimateFromEvent(e *types.SwapEvent) {
	amt1 := e.NormalizedAmount1()
	amt2 := e.NormalizedAmount2()

	switch {
	case r.native[e.AmountInfo.Token1]:
		r.EstimatePrice(e.AmountInfo.Token2, r.PriceUSD(e.AmountInfo.Token1), amt1, amt2)
	case r.native[e.AmountInfo.Token2]:
		r.EstimatePrice(e.AmountInfo.Token1, r.PriceUSD(e.AmountInfo.Token2), amt2, amt1)
	case e.Value > 0:
		// The notional covers the whole event, so it bounds both legs.
		r.EstimatePrice(e.AmountInfo.Token1, e.Value, 1, amt1)
		r.EstimatePrice(e.AmountInfo.Token2, e.Value, 1, amt2)
	}
}
