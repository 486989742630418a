package export

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wallet-pnl/internal/types"
)

func reportPath(dir string, t time.Time, ext string) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(dir, "trading_report_"+d+"."+ext)
}

// WriteJSON serializes the full report, indented, into the export directory.
// Returns the written path.
func WriteJSON(dir string, report *types.TradingReport) (string, error) {
	p := reportPath(dir, time.Now(), "json")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

// WriteCSV writes the flat trade history. Columns are fixed; sell-side fields
// stay empty until a lot has at least one fill.
func WriteCSV(dir string, report *types.TradingReport) (string, error) {
	p := reportPath(dir, time.Now(), "csv")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ID", "Buy Date", "Sell Date", "Token", "Amount", "Buy Price", "Sell Price", "P&L", "P&L %", "Status"}); err != nil {
		return "", err
	}
	for i := range report.Trades {
		if err := w.Write(tradeRow(&report.Trades[i])); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return p, nil
}

func tradeRow(t *types.Trade) []string {
	status := "Open"
	if t.IsComplete {
		status = "Completed"
	}

	sellDate, sellPrice, pnl, pnlPct := "", "", "", ""
	if t.SellTimestamp != 0 {
		sellDate = t.SellDate
		sellPrice = formatFloat(t.SellPrice)
		pnl = formatFloat(t.PnL)
		pnlPct = strconv.FormatFloat(t.PnLPercentage, 'f', 2, 64)
	}

	return []string{
		t.ID,
		t.BuyDate,
		sellDate,
		t.TokenSymbol,
		formatFloat(t.BoughtAmount),
		formatFloat(t.BuyPrice),
		sellPrice,
		pnl,
		pnlPct,
		status,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CompressOlder gzips exported reports older than the retention window and
// removes the originals. A zero or negative retention disables compression.
func CompressOlder(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		if ext != ".json" && ext != ".csv" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			_ = os.Remove(p)
			return nil
		}

		if e3 := gzipFile(p, gz); e3 == nil {
			_ = os.Remove(p)
		}
		return nil
	})
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		_ = gw.Close()
		return fmt.Errorf("failed to compress %s: %w", src, err)
	}
	return gw.Close()
}
