package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"wallet-pnl/internal/api"
	"wallet-pnl/internal/interfaces"
	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/store"
)

// FromConfig selects the transaction source named by the config.
func FromConfig(cfg *store.Config) (interfaces.TransactionSource, error) {
	switch cfg.DataSource {
	case "FILE":
		return NewFileSource(cfg.InputFile), nil
	case "INDEXER":
		return NewIndexerSource(cfg), nil
	default:
		return nil, fmt.Errorf("unknown data_source %q", cfg.DataSource)
	}
}

// fileSource reads an already-exported JSON payload from disk.
type fileSource struct {
	path string
}

var _ interfaces.TransactionSource = (*fileSource)(nil)

func NewFileSource(path string) interfaces.TransactionSource {
	return &fileSource{path: path}
}

func (f *fileSource) Fetch(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return b, nil
}

// indexerSource pulls a wallet's transaction history page by page from an
// indexer REST API and hands the merged record array to the analyzer. The
// records pass through untouched; interpreting them is the analyzer's job.
type indexerSource struct {
	client    *api.Client
	wallet    string
	apiKey    string
	pageLimit int
	maxPages  int
}

var _ interfaces.TransactionSource = (*indexerSource)(nil)

func NewIndexerSource(cfg *store.Config) interfaces.TransactionSource {
	var apiKey string
	if cfg.Indexer.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.Indexer.APIKeyEnv)
	}
	return &indexerSource{
		client: api.NewClient(
			api.WithBaseURL(cfg.Indexer.BaseURL),
			api.WithHeader("Accept", "application/json"),
			api.WithLogging(true),
		),
		wallet:    cfg.Wallet,
		apiKey:    apiKey,
		pageLimit: cfg.Indexer.PageLimit,
		maxPages:  cfg.Indexer.MaxPages,
	}
}

func (s *indexerSource) Fetch(ctx context.Context) ([]byte, error) {
	var all []json.RawMessage
	before := ""

	for page := 0; page < s.maxPages; page++ {
		records, err := s.fetchPage(ctx, before)
		if err != nil {
			// Partial history is still analyzable; fail only with nothing.
			if len(all) > 0 {
				logger.Warn(ctx, "Pagination stopped early", "pages", page, "records", len(all), "error", err)
				break
			}
			return nil, err
		}
		if len(records) == 0 {
			break
		}

		all = append(all, records...)
		before = lastTransID(records)

		// A short page means the history is exhausted.
		if len(records) < s.pageLimit {
			break
		}
	}

	logger.Info(ctx, "Transaction history fetched", "wallet", s.wallet, "records", len(all))
	return json.Marshal(all)
}

func (s *indexerSource) fetchPage(ctx context.Context, before string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", s.pageLimit))
	if s.apiKey != "" {
		q.Set("api-key", s.apiKey)
	}
	if before != "" {
		q.Set("before", before)
	}

	var records []json.RawMessage
	path := fmt.Sprintf("/addresses/%s/transactions?%s", url.PathEscape(s.wallet), q.Encode())
	if err := s.client.GetJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// lastTransID extracts the pagination cursor from the last record of a page.
func lastTransID(records []json.RawMessage) string {
	if len(records) == 0 {
		return ""
	}
	var cursor struct {
		TransID string `json:"trans_id"`
	}
	if err := json.Unmarshal(records[len(records)-1], &cursor); err != nil {
		return ""
	}
	return cursor.TransID
}
