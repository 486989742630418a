package export

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wallet-pnl/internal/types"
)

func sampleReport() *types.TradingReport {
	return &types.TradingReport{
		Summary: types.ReportSummary{
			TotalTradeCount:     2,
			CompletedTradeCount: 1,
			OpenTradeCount:      1,
			RealizedPnL:         -40,
		},
		Trades: []types.Trade{
			{
				ID:            "tx-closed",
				BuyTimestamp:  1000,
				BuyDate:       types.ISODate(1000),
				SellTimestamp: 2000,
				SellDate:      types.ISODate(2000),
				TokenSymbol:   "MEME",
				BoughtAmount:  1000,
				SoldAmount:    1000,
				BuyPrice:      0.1,
				SellPrice:     0.06,
				BuyValueUSD:   100,
				SellValueUSD:  60,
				PnL:           -40,
				PnLPercentage: -40,
				IsComplete:    true,
			},
			{
				ID:           "tx-open",
				BuyTimestamp: 3000,
				BuyDate:      types.ISODate(3000),
				TokenSymbol:  "MEME",
				BoughtAmount: 500,
				BuyPrice:     0.12,
				BuyValueUSD:  60,
			},
		},
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	p, err := WriteJSON(t.TempDir(), sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(p, ".json") {
		t.Errorf("unexpected path %q", p)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var got types.TradingReport
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got.Summary.RealizedPnL != -40 || len(got.Trades) != 2 {
		t.Errorf("round trip mismatch: realized %f, trades %d", got.Summary.RealizedPnL, len(got.Trades))
	}
}

func TestWriteCSVRows(t *testing.T) {
	p, err := WriteCSV(t.TempDir(), sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][9] != "Status" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	closed := rows[1]
	if closed[0] != "tx-closed" || closed[9] != "Completed" {
		t.Errorf("unexpected closed row: %v", closed)
	}
	if closed[8] != "-40.00" {
		t.Errorf("expected pnl%% -40.00, got %q", closed[8])
	}

	open := rows[2]
	if open[9] != "Open" {
		t.Errorf("unexpected status for open lot: %q", open[9])
	}
	for _, idx := range []int{2, 6, 7, 8} {
		if open[idx] != "" {
			t.Errorf("expected empty sell field at column %d, got %q", idx, open[idx])
		}
	}
}

func TestCompressOlderGzipsExpiredReports(t *testing.T) {
	dir := t.TempDir()

	oldPath := filepath.Join(dir, "trading_report_2026-01-01.json")
	if err := os.WriteFile(oldPath, []byte(`{"summary":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -60)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatal(err)
	}

	freshPath := filepath.Join(dir, "trading_report_2026-08-28.json")
	if err := os.WriteFile(freshPath, []byte(`{"summary":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(dir, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("expected expired report to be removed")
	}
	gz, err := os.Open(oldPath + ".gz")
	if err != nil {
		t.Fatalf("expected gzipped report: %v", err)
	}
	defer gz.Close()
	gr, err := gzip.NewReader(gz)
	if err != nil {
		t.Fatalf("invalid gzip: %v", err)
	}
	if b, err := io.ReadAll(gr); err != nil || string(b) != `{"summary":{}}` {
		t.Errorf("gzip content mismatch: %q (%v)", b, err)
	}

	if _, err := os.Stat(freshPath); err != nil {
		t.Errorf("fresh report must survive: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	dir := t.TempDir()

	p := filepath.Join(dir, "trading_report_2026-01-01.csv")
	if err := os.WriteFile(p, []byte("ID\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -365)
	if err := os.Chtimes(p, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(dir, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Errorf("retention 0 must not touch files: %v", err)
	}
}
