package interfaces

// BaseAssetDetector decides whether a token prices the other leg of a swap
// (the native chain asset or a recognized stablecoin).
type BaseAssetDetector interface {
	IsBase(tokenAddress string) bool
}

// MetadataResolver derives display metadata for a token that has no known
// registry entry. Implementations may be heuristic (address-derived) or backed
// by a real metadata service.
type MetadataResolver interface {
	SymbolFor(tokenAddress string) string
	NameFor(tokenAddress string) string
}
