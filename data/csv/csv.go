// Package csv loads daily bar snapshots from a directory of per-symbol CSV
// files. Each file is named SYMBOL.csv with a Date,Open,High,Low,Close,
// Volume header; an optional Adj Close column is ignored
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/log"
)

// LoadDirectory reads every .csv file in dir into a bar snapshot. When
// symbols is non-empty only the named symbols are loaded
func LoadDirectory(dir string, symbols []string) (*data.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(symbols))
	for i := range symbols {
		wanted[strings.ToUpper(symbols[i])] = true
	}
	snap := data.NewSnapshot()
	var loaded int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSuffix(entry.Name(), ".csv"))
		if len(wanted) > 0 && !wanted[symbol] {
			continue
		}
		if err = loadFile(snap, symbol, filepath.Join(dir, entry.Name())); err != nil {
			return nil, fmt.Errorf("loading %v: %w", entry.Name(), err)
		}
		loaded++
	}
	log.Infof(log.Data, "loaded %v csv bar file(s) from %v", loaded, dir)
	return snap, nil
}

func loadFile(snap *data.Snapshot, symbol, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("no bar rows found")
	}
	cols, err := mapColumns(records[0])
	if err != nil {
		return err
	}
	for _, row := range records[1:] {
		b, err := parseBar(row, cols)
		if err != nil {
			return err
		}
		snap.AddBar(symbol, b)
	}
	return nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i := range header {
		cols[strings.ToLower(strings.TrimSpace(header[i]))] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func parseBar(row []string, cols map[string]int) (data.Bar, error) {
	date, err := time.ParseInLocation(common.DateFormat, row[cols["date"]], time.UTC)
	if err != nil {
		return data.Bar{}, err
	}
	b := data.Bar{Date: date}
	for _, field := range []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"open", &b.Open},
		{"high", &b.High},
		{"low", &b.Low},
		{"close", &b.Close},
		{"volume", &b.Volume},
	} {
		*field.dst, err = decimal.NewFromString(strings.TrimSpace(row[cols[field.name]]))
		if err != nil {
			return data.Bar{}, fmt.Errorf("parsing %v on %v: %w", field.name, row[cols["date"]], err)
		}
	}
	return b, nil
}
