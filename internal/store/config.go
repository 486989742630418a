package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedToken is a token the registry pre-populates before any event is
// processed (the native chain asset and its wrapped form).
type SeedToken struct {
	Address  string  `yaml:"address"`
	Name     string  `yaml:"name"`
	Symbol   string  `yaml:"symbol"`
	Decimals int     `yaml:"decimals"`
	PriceUSD float64 `yaml:"price_usd"`
}

type Config struct {
	Wallet     string `yaml:"wallet"`
	DataSource string `yaml:"data_source"` // FILE or INDEXER
	InputFile  string `yaml:"input_file"`

	Indexer struct {
		BaseURL   string `yaml:"base_url"`
		APIKeyEnv string `yaml:"api_key_env"`
		PageLimit int    `yaml:"page_limit"`
		MaxPages  int    `yaml:"max_pages"`
	} `yaml:"indexer"`

	Classification struct {
		BaseAssets        []string `yaml:"base_assets"`
		StablecoinSymbols []string `yaml:"stablecoin_symbols"`
	} `yaml:"classification"`

	Registry struct {
		Seeds []SeedToken `yaml:"seeds"`
	} `yaml:"registry"`

	Export struct {
		Dir           string `yaml:"dir"`
		Formats       []string `yaml:"formats"` // csv, json
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"export"`
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "FILE"
	}
	if c.Indexer.PageLimit == 0 {
		c.Indexer.PageLimit = 100
	}
	if c.Indexer.MaxPages == 0 {
		c.Indexer.MaxPages = 10
	}
	if len(c.Classification.BaseAssets) == 0 {
		c.Classification.BaseAssets = DefaultBaseAssets()
	}
	if len(c.Classification.StablecoinSymbols) == 0 {
		c.Classification.StablecoinSymbols = DefaultStablecoinSymbols()
	}
	if len(c.Registry.Seeds) == 0 {
		c.Registry.Seeds = DefaultSeeds()
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "reports"
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{"json", "csv"}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case "FILE":
		if c.InputFile == "" {
			return errors.New("data_source FILE requires input_file")
		}
	case "INDEXER":
		if c.Indexer.BaseURL == "" {
			return errors.New("data_source INDEXER requires indexer.base_url")
		}
		if c.Wallet == "" {
			return errors.New("data_source INDEXER requires wallet")
		}
	default:
		return fmt.Errorf("unknown data_source %q (want FILE or INDEXER)", c.DataSource)
	}
	for _, f := range c.Export.Formats {
		if f != "csv" && f != "json" {
			return fmt.Errorf("unknown export format %q", f)
		}
	}
	return nil
}

// DefaultBaseAssets lists the native asset identifiers recognized as the base
// leg of a swap (SOL and wrapped SOL).
func DefaultBaseAssets() []string {
	return []string{
		"So11111111111111111111111111111111111111111",
		"So11111111111111111111111111111111111111112",
	}
}

// DefaultStablecoinSymbols lists symbols treated as base assets when resolved
// through the registry.
func DefaultStablecoinSymbols() []string {
	return []string{"USDC", "USDT", "BUSD", "DAI", "TUSD", "USDH"}
}

// DefaultSeeds returns the native asset entries inserted into the registry
// before any event is processed. The price is a fixed reference estimate used
// to value legs and to bootstrap per-token price inference.
func DefaultSeeds() []SeedToken {
	return []SeedToken{
		{
			Address:  "So11111111111111111111111111111111111111111",
			Name:     "Solana",
			Symbol:   "SOL",
			Decimals: 9,
			PriceUSD: 100.0,
		},
		{
			Address:  "So11111111111111111111111111111111111111112",
			Name:     "Wrapped SOL",
			Symbol:   "WSOL",
			Decimals: 9,
			PriceUSD: 100.0,
		},
	}
}
