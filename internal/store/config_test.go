package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	p := writeConfig(t, `
input_file: transactions.json
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataSource != "FILE" {
		t.Errorf("expected FILE default, got %q", cfg.DataSource)
	}
	if cfg.Indexer.PageLimit != 100 || cfg.Indexer.MaxPages != 10 {
		t.Errorf("unexpected indexer defaults: limit %d, pages %d", cfg.Indexer.PageLimit, cfg.Indexer.MaxPages)
	}
	if len(cfg.Classification.BaseAssets) == 0 || len(cfg.Classification.StablecoinSymbols) == 0 {
		t.Error("expected default classification lists")
	}
	if len(cfg.Registry.Seeds) != 2 {
		t.Errorf("expected 2 default seeds, got %d", len(cfg.Registry.Seeds))
	}
	if cfg.Export.Dir != "reports" || len(cfg.Export.Formats) != 2 {
		t.Errorf("unexpected export defaults: %q %v", cfg.Export.Dir, cfg.Export.Formats)
	}
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	p := writeConfig(t, `
wallet: WalletAddress111111111111111111111111111111
data_source: INDEXER
indexer:
  base_url: https://api.example.com/v0
  page_limit: 50
classification:
  base_assets: [OnlyThisOne]
registry:
  seeds:
    - address: NativeAddress
      symbol: NTV
      decimals: 9
      price_usd: 42.5
export:
  formats: [csv]
  retention_days: 7
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Indexer.PageLimit != 50 {
		t.Errorf("explicit page_limit overridden: %d", cfg.Indexer.PageLimit)
	}
	if len(cfg.Classification.BaseAssets) != 1 || cfg.Classification.BaseAssets[0] != "OnlyThisOne" {
		t.Errorf("explicit base_assets overridden: %v", cfg.Classification.BaseAssets)
	}
	if len(cfg.Registry.Seeds) != 1 || cfg.Registry.Seeds[0].PriceUSD != 42.5 {
		t.Errorf("explicit seeds overridden: %+v", cfg.Registry.Seeds)
	}
	if len(cfg.Export.Formats) != 1 || cfg.Export.Formats[0] != "csv" {
		t.Errorf("explicit formats overridden: %v", cfg.Export.Formats)
	}
	if cfg.Export.RetentionDays != 7 {
		t.Errorf("retention_days lost: %d", cfg.Export.RetentionDays)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name, yaml string
	}{
		{"file without input", `data_source: FILE`},
		{"indexer without url", "data_source: INDEXER\nwallet: W"},
		{"indexer without wallet", "data_source: INDEXER\nindexer:\n  base_url: https://x"},
		{"unknown source", `data_source: SMOKE_SIGNALS`},
		{"unknown format", "input_file: t.json\nexport:\n  formats: [xml]"},
	}

	for _, c := range cases {
		p := writeConfig(t, c.yaml)
		if _, err := LoadConfig(p); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
