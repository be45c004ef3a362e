package config

import "errors"

var (
	errNoConfigFile        = errors.New("config file path is empty")
	errBadDate             = errors.New("date is not in YYYY-MM-DD format")
	errNoSymbols           = errors.New("at least one symbol is required")
	errInvalidInitialCash  = errors.New("initial cash must be positive")
	errUnknownDataSource   = errors.New("unknown data source")
	errUnknownPriceField   = errors.New("unknown price field")
	errNegativeMinimumSize = errors.New("minimum trade size cannot be negative")
)

// Data source names accepted in a run config
const (
	DataSourceCSV    = "csv"
	DataSourceSQLite = "sqlite"
)

// Config is a full run definition, loaded from a JSON or YAML file
type Config struct {
	StartDate        string          `mapstructure:"start-date"`
	EndDate          string          `mapstructure:"end-date"`
	InitialCash      float64         `mapstructure:"initial-cash"`
	Cadence          string          `mapstructure:"cadence"`
	Weekday          string          `mapstructure:"weekday"`
	PreMarket        bool            `mapstructure:"pre-market"`
	PriceField       string          `mapstructure:"price-field"`
	MinimumTradeSize float64         `mapstructure:"minimum-trade-size"`
	Data             DataConfig      `mapstructure:"data"`
	Strategy         StrategyConfig  `mapstructure:"strategy"`
	Portfolio        PortfolioConfig `mapstructure:"portfolio"`
	Risk             RiskConfig      `mapstructure:"risk"`
	Sizer            SizerConfig     `mapstructure:"sizer"`
	Fee              FeeConfig       `mapstructure:"fee"`
	Report           ReportConfig    `mapstructure:"report"`
}

// DataConfig names the bar source for the run. Path is a directory of
// SYMBOL.csv files for the csv source or a database file for sqlite
type DataConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// StrategyConfig selects and parameterises the signal generator
type StrategyConfig struct {
	Name     string             `mapstructure:"name"`
	Symbols  []string           `mapstructure:"symbols"`
	Weights  map[string]float64 `mapstructure:"weights"`
	Lookback int                `mapstructure:"lookback"`
}

// PortfolioConfig selects the weight optimiser
type PortfolioConfig struct {
	Optimiser string  `mapstructure:"optimiser"`
	Scale     float64 `mapstructure:"scale"`
}

// RiskConfig selects the risk manager
type RiskConfig struct {
	Name        string  `mapstructure:"name"`
	ExposureCap float64 `mapstructure:"exposure-cap"`
}

// SizerConfig selects the order sizer. CashBuffer applies to dollar_weighted,
// GrossLeverage to long_short
type SizerConfig struct {
	Name          string  `mapstructure:"name"`
	CashBuffer    float64 `mapstructure:"cash-buffer"`
	GrossLeverage float64 `mapstructure:"gross-leverage"`
}

// FeeConfig selects the commission model. Param is the per-trade charge or
// the percentage rate depending on the model
type FeeConfig struct {
	Model string  `mapstructure:"model"`
	Param float64 `mapstructure:"param"`
}

// ReportConfig controls the optional HTTP results server
type ReportConfig struct {
	Serve         bool   `mapstructure:"serve"`
	ListenAddress string `mapstructure:"listen-address"`
}
