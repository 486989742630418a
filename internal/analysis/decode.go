package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/types"
)

var (
	// ErrNoTransactions means no recognizable event sequence was found in the
	// payload. Fatal to the run.
	ErrNoTransactions = errors.New("no recognizable transactions in payload")
	// ErrEmptyTransactions means a sequence was found but it holds no records.
	// Fatal to the run.
	ErrEmptyTransactions = errors.New("transactions payload is empty")
)

// envelope is the wrapped response shape some indexers return.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// decodeEvents extracts swap events from any of the accepted payload shapes:
// a plain array of records, an object with the array under "data", a wrapped
// {success, data} response, or a JSON-encoded string of any of those (one
// recursive level). Individual malformed records are skipped with a warning;
// only a payload with no usable sequence at all fails.
func decodeEvents(ctx context.Context, data []byte) ([]types.SwapEvent, error) {
	raws, ok := rawRecords(data)
	if !ok {
		// Payload may be a JSON-encoded string of one of the shapes above.
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			if raws, ok = rawRecords([]byte(s)); !ok {
				return nil, ErrNoTransactions
			}
		} else {
			return nil, ErrNoTransactions
		}
	}

	if len(raws) == 0 {
		return nil, ErrEmptyTransactions
	}

	events := make([]types.SwapEvent, 0, len(raws))
	for i, raw := range raws {
		var e types.SwapEvent
		if err := json.Unmarshal(raw, &e); err != nil {
			logger.Warn(ctx, "Skipping unparseable record", "index", i, "error", err)
			continue
		}
		if err := validateEvent(&e); err != nil {
			logger.Warn(ctx, "Skipping malformed record", "index", i, "trans_id", e.TransID, "error", err)
			continue
		}
		if e.TransID == "" {
			e.TransID = uuid.NewString()
		}
		events = append(events, e)
	}

	if len(events) == 0 {
		return nil, ErrEmptyTransactions
	}
	return events, nil
}

// rawRecords finds the record array in a plain-array or enveloped payload.
func rawRecords(data []byte) ([]json.RawMessage, bool) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, true
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &raws); err == nil {
			return raws, true
		}
	}
	return nil, false
}

// validateEvent enforces the required record shape. Only swap records are
// checked for legs; other activity types pass through and are ignored later.
func validateEvent(e *types.SwapEvent) error {
	if e.ActivityType != types.ActivityTokenSwap {
		return nil
	}
	if e.AmountInfo.Token1 == "" || e.AmountInfo.Token2 == "" {
		return fmt.Errorf("swap record missing leg token")
	}
	if e.AmountInfo.Token1Decimals < 0 || e.AmountInfo.Token2Decimals < 0 {
		return fmt.Errorf("swap record has negative decimals")
	}
	return nil
}
