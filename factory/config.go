package factory

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/shopspring/decimal"
)

const (
	DefaultServerName = "finagent"
	DefaultTransport  = "stdio"
	DefaultAddr       = "127.0.0.1:8080"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config of the tool server
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Logs     LogsConfig     `json:"logs" yaml:"logs"`
	Currency CurrencyConfig `json:"currency" yaml:"currency"`
	Toolbox  ToolboxConfig  `json:"toolbox" yaml:"toolbox"`
}

// ServerConfig specifies how the MCP server is exposed
type ServerConfig struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Transport is stdio or http
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`
	// Addr is the listen address for the http transport
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LogsConfig specifies the logger
type LogsConfig struct {
	// Level is one of trace, debug, info, notice, warning, error, critical
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is text or json
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// CurrencyConfig overrides the exchange rate table
type CurrencyConfig struct {
	// Base is the currency all rates are quoted against
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	// Rates maps "FROM:TO" pairs to the amount of TO per one unit of FROM
	Rates map[string]float64 `json:"rates,omitempty" yaml:"rates,omitempty"`
}

// ToolboxConfig selects the tools
type ToolboxConfig struct {
	// Group selects a named set of tools: finance, wealth, fitness, wellness or utility.
	// Empty means all tools.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
	// Enabled lists the tools to serve within the group, empty means all
	Enabled []string `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Concurrency limits parallel tool calls in a batch, 0 means unlimited
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

// LoadConfig from file, empty file name returns the defaults
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return nil, errors.WithMessagef(err, "failed to load config %s", file)
		}
	}
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills the missing values
func (c *Config) SetDefaults() {
	c.Server.Name = values.StringsCoalesce(c.Server.Name, DefaultServerName)
	c.Server.Version = values.StringsCoalesce(c.Server.Version, Version)
	c.Server.Transport = values.StringsCoalesce(c.Server.Transport, DefaultTransport)
	c.Server.Addr = values.StringsCoalesce(c.Server.Addr, DefaultAddr)
	c.Logs.Level = values.StringsCoalesce(c.Logs.Level, DefaultLogLevel)
	c.Logs.Format = values.StringsCoalesce(c.Logs.Format, DefaultLogFormat)
	c.Currency.Base = values.StringsCoalesce(c.Currency.Base, string(finance.USD))
}

// ExchangeRateTable returns the configured table,
// or the built-in rates when none are configured.
func (c *CurrencyConfig) ExchangeRateTable() (*finance.ExchangeRateTable, error) {
	base, err := finance.ParseCurrency(values.StringsCoalesce(c.Base, string(finance.USD)))
	if err != nil {
		return nil, errors.WithMessage(err, "base currency")
	}

	if len(c.Rates) == 0 {
		if base != finance.USD {
			return nil, errors.Errorf("rates are required for base currency %s", base)
		}
		return finance.DefaultExchangeRateTable(), nil
	}

	rates := make(map[finance.Pair]decimal.Decimal, len(c.Rates))
	for k, v := range c.Rates {
		pair, err := finance.ParsePair(strings.TrimSpace(k))
		if err != nil {
			return nil, errors.WithMessagef(err, "rate %q", k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.WithMessagef(finance.ErrInvalidInput, "rate %q must be a finite number", k)
		}
		rates[pair] = decimal.NewFromFloat(v)
	}
	return finance.NewExchangeRateTable(base, rates)
}
