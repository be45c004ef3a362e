// Package config loads and validates run definitions. Files may be JSON or
// YAML; the extension decides the format
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/log"
	"github.com/quantfolio/backtester/rebalance"
)

// ReadConfigFromFile loads, unmarshals and validates the run config at path
func ReadConfigFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, errNoConfigFile
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("price-field", "close")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config %v: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not unmarshal config %v: %w", path, err)
	}
	c.normaliseSymbols()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log.Infof(log.Config, "loaded run config from %v", path)
	return &c, nil
}

// normaliseSymbols uppercases the symbol universe. Viper lowercases every
// map key during unmarshal, while the bar loaders store symbols uppercase,
// so weight keys and symbol lists must be folded back before wiring
func (c *Config) normaliseSymbols() {
	for i := range c.Strategy.Symbols {
		c.Strategy.Symbols[i] = strings.ToUpper(c.Strategy.Symbols[i])
	}
	if len(c.Strategy.Weights) > 0 {
		weights := make(map[string]float64, len(c.Strategy.Weights))
		for symbol, w := range c.Strategy.Weights {
			weights[strings.ToUpper(symbol)] = w
		}
		c.Strategy.Weights = weights
	}
}

// Validate checks the settings that would otherwise only fail mid-wiring
func (c *Config) Validate() error {
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if c.InitialCash <= 0 {
		return fmt.Errorf("%w, received %v", errInvalidInitialCash, c.InitialCash)
	}
	if _, err := rebalance.ParseCadence(c.Cadence); err != nil {
		return err
	}
	if len(c.Strategy.Symbols) == 0 && len(c.Strategy.Weights) == 0 {
		return errNoSymbols
	}
	if _, err := c.Field(); err != nil {
		return err
	}
	if c.MinimumTradeSize < 0 {
		return fmt.Errorf("%w, received %v", errNegativeMinimumSize, c.MinimumTradeSize)
	}
	switch c.Data.Source {
	case DataSourceCSV, DataSourceSQLite:
	default:
		return fmt.Errorf("%w %q", errUnknownDataSource, c.Data.Source)
	}
	return nil
}

// Window parses the run's start and end dates
func (c *Config) Window() (start, end time.Time, err error) {
	start, err = time.Parse(common.DateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", errBadDate, c.StartDate)
	}
	end, err = time.Parse(common.DateFormat, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", errBadDate, c.EndDate)
	}
	return start, end, nil
}

// Policy builds the rebalance policy from the cadence settings
func (c *Config) Policy() (rebalance.Policy, error) {
	cadence, err := rebalance.ParseCadence(c.Cadence)
	if err != nil {
		return rebalance.Policy{}, err
	}
	return rebalance.Policy{Cadence: cadence, Weekday: c.Weekday}, nil
}

// Field parses the configured price field
func (c *Config) Field() (data.PriceField, error) {
	switch strings.ToLower(c.PriceField) {
	case "", "close":
		return data.Close, nil
	case "open":
		return data.Open, nil
	case "high":
		return data.High, nil
	case "low":
		return data.Low, nil
	default:
		return 0, fmt.Errorf("%w %q", errUnknownPriceField, c.PriceField)
	}
}

// Symbols returns the full symbol universe the run needs bars for
func (c *Config) Symbols() []string {
	seen := make(map[string]struct{}, len(c.Strategy.Symbols)+len(c.Strategy.Weights))
	var out []string
	for _, s := range c.Strategy.Symbols {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for s := range c.Strategy.Weights {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
