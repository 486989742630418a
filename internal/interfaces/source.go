package interfaces

import "context"

// TransactionSource provides the raw payload fed into the analyzer. It is an
// opaque collaborator: it either returns bytes in one of the accepted input
// shapes or fails, and plays no part in the computation itself.
type TransactionSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
