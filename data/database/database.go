// Package database loads and stores daily bar snapshots in a local sqlite
// file, allowing repeated backtest runs without re-parsing source data
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	// sqlite driver registered for database/sql
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/log"
)

const createTable = `
CREATE TABLE IF NOT EXISTS daily_bars (
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	open TEXT NOT NULL,
	high TEXT NOT NULL,
	low TEXT NOT NULL,
	close TEXT NOT NULL,
	volume TEXT NOT NULL,
	PRIMARY KEY (symbol, date)
);`

// Load reads every stored bar from the sqlite file at path into a snapshot.
// When symbols is non-empty only the named symbols are loaded
func Load(path string, symbols []string) (*data.Snapshot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := "SELECT symbol, date, open, high, low, close, volume FROM daily_bars"
	var args []interface{}
	if len(symbols) > 0 {
		query += " WHERE symbol IN (?" + strings.Repeat(",?", len(symbols)-1) + ")"
		for i := range symbols {
			args = append(args, symbols[i])
		}
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := data.NewSnapshot()
	var count int
	for rows.Next() {
		var symbol, date, open, high, low, closePrice, volume string
		if err = rows.Scan(&symbol, &date, &open, &high, &low, &closePrice, &volume); err != nil {
			return nil, err
		}
		b, err := parseBar(date, open, high, low, closePrice, volume)
		if err != nil {
			return nil, fmt.Errorf("parsing stored bar for %v on %v: %w", symbol, date, err)
		}
		snap.AddBar(symbol, b)
		count++
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	log.Infof(log.Data, "loaded %v bar(s) from %v", count, path)
	return snap, nil
}

// Save writes every bar in the snapshot to the sqlite file at path,
// creating the schema when absent. Existing rows are replaced
func Save(path string, snap *data.Snapshot) error {
	if snap == nil {
		return common.ErrNilArguments
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err = db.Exec(createTable); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO daily_bars (symbol, date, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, symbol := range snap.Symbols() {
		bars, err := snap.History(symbol, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), int(^uint(0)>>1))
		if err != nil {
			tx.Rollback()
			return err
		}
		for i := range bars {
			_, err = stmt.Exec(symbol,
				bars[i].Date.Format(common.DateFormat),
				bars[i].Open.String(),
				bars[i].High.String(),
				bars[i].Low.String(),
				bars[i].Close.String(),
				bars[i].Volume.String())
			if err != nil {
				tx.Rollback()
				return err
			}
		}
	}
	return tx.Commit()
}

func parseBar(date, open, high, low, closePrice, volume string) (data.Bar, error) {
	d, err := time.ParseInLocation(common.DateFormat, date, time.UTC)
	if err != nil {
		return data.Bar{}, err
	}
	b := data.Bar{Date: d}
	for _, field := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{open, &b.Open},
		{high, &b.High},
		{low, &b.Low},
		{closePrice, &b.Close},
		{volume, &b.Volume},
	} {
		*field.dst, err = decimal.NewFromString(field.raw)
		if err != nil {
			return data.Bar{}, err
		}
	}
	return b, nil
}
