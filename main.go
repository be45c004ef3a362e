package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/quantfolio/backtester/config"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/data/csv"
	"github.com/quantfolio/backtester/data/database"
	"github.com/quantfolio/backtester/engine"
	"github.com/quantfolio/backtester/exchange"
	"github.com/quantfolio/backtester/exchange/fee"
	"github.com/quantfolio/backtester/exchange/sizer"
	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/log"
	"github.com/quantfolio/backtester/portfolio"
	"github.com/quantfolio/backtester/report"
	"github.com/quantfolio/backtester/risk"
	"github.com/quantfolio/backtester/statistics"
	"github.com/quantfolio/backtester/strategy"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "daily-bar portfolio backtesting engine",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "execute a backtest described by a config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "path to a JSON or YAML run config",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "serve",
						Usage: "serve results over HTTP after the run, overriding the config",
					},
				},
				Action: runAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Errorf(log.Global, "%v", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	bt, err := setupRun(cfg)
	if err != nil {
		return err
	}
	if err = bt.Run(); err != nil {
		return err
	}
	summary, err := statistics.Calculate(bt.Ledger.EquityCurve())
	if err != nil {
		return err
	}
	summary.PrintResult()
	for _, skip := range bt.SkippedOrders() {
		log.Warnf(log.Engine, "skipped %v %v: %v", skip.Symbol, skip.Quantity, skip.Reason)
	}

	if !cfg.Report.Serve && !c.Bool("serve") {
		return nil
	}
	addr := cfg.Report.ListenAddress
	if addr == "" {
		addr = "localhost:9050"
	}
	srv, err := report.New(summary, bt.Ledger.EquityCurve())
	if err != nil {
		return err
	}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		if err := srv.Close(); err != nil {
			log.Errorf(log.Report, "report server shutdown failed: %v", err)
		}
	}()
	return srv.Serve(addr)
}

// setupRun wires every collaborator named in the config into a ready engine
func setupRun(cfg *config.Config) (*engine.BackTest, error) {
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	field, err := cfg.Field()
	if err != nil {
		return nil, err
	}

	feed, err := loadData(cfg)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]decimal.Decimal, len(cfg.Strategy.Weights))
	for symbol, w := range cfg.Strategy.Weights {
		weights[symbol] = decimal.NewFromFloat(w)
	}
	strat, err := strategy.New(cfg.Strategy.Name, cfg.Strategy.Symbols, weights, cfg.Strategy.Lookback)
	if err != nil {
		return nil, err
	}
	constructor, err := portfolio.NewFromConfig(cfg.Portfolio.Optimiser, decimal.NewFromFloat(cfg.Portfolio.Scale))
	if err != nil {
		return nil, err
	}
	riskManager, err := risk.NewFromConfig(cfg.Risk.Name, decimal.NewFromFloat(cfg.Risk.ExposureCap))
	if err != nil {
		return nil, err
	}
	costModel, err := fee.NewFromConfig(cfg.Fee.Model, decimal.NewFromFloat(cfg.Fee.Param))
	if err != nil {
		return nil, err
	}
	sizerParam := cfg.Sizer.CashBuffer
	if strings.EqualFold(cfg.Sizer.Name, "long_short") {
		sizerParam = cfg.Sizer.GrossLeverage
	}
	orderSizer, err := sizer.NewFromConfig(cfg.Sizer.Name, decimal.NewFromFloat(sizerParam))
	if err != nil {
		return nil, err
	}

	return engine.New(start, end, policy, cfg.PreMarket, engine.BackTest{
		Strategy:    strat,
		Constructor: constructor,
		Risk:        riskManager,
		Exchange: &exchange.Exchange{
			Sizer:            orderSizer,
			CostModel:        costModel,
			PriceField:       field,
			MinimumTradeSize: decimal.NewFromFloat(cfg.MinimumTradeSize),
		},
		Ledger: ledger.New(decimal.NewFromFloat(cfg.InitialCash)),
		Data:   feed,
	})
}

func loadData(cfg *config.Config) (data.Handler, error) {
	switch cfg.Data.Source {
	case config.DataSourceCSV:
		return csv.LoadDirectory(cfg.Data.Path, cfg.Symbols())
	case config.DataSourceSQLite:
		return database.Load(cfg.Data.Path, cfg.Symbols())
	default:
		return nil, fmt.Errorf("unrecognised data source %q", cfg.Data.Source)
	}
}
