package registry

import (
	"strings"

	"wallet-pnl/internal/interfaces"
)

// addressResolver derives display metadata from the token address alone.
// Launchpad mints carry a "pump" suffix whose preceding characters resemble a
// ticker; anything else falls back to a fixed truncation of the address.
type addressResolver struct{}

func NewAddressResolver() interfaces.MetadataResolver {
	return addressResolver{}
}

var _ interfaces.MetadataResolver = addressResolver{}

func (addressResolver) SymbolFor(address string) string {
	if idx := strings.Index(address, "pump"); idx > 0 {
		part := address[:idx]
		if len(part) > 4 {
			part = part[len(part)-4:]
		}
		return strings.ToUpper(part)
	}
	if len(address) > 4 {
		return strings.ToUpper(address[:4])
	}
	return strings.ToUpper(address)
}

func (addressResolver) NameFor(address string) string {
	if idx := strings.Index(address, "pump"); idx > 0 {
		part := address[:idx]
		if len(part) > 5 {
			return part[len(part)-5:]
		}
		return part
	}
	return Truncate(address)
}

// Truncate is the fixed short form of a token address used wherever a full
// identifier is too long to display.
func Truncate(address string) string {
	if len(address) <= 6 {
		return address
	}
	return address[:6] + "..."
}
