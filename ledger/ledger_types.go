package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one daily mark-to-market observation
type EquityPoint struct {
	Date   time.Time       `json:"date"`
	Equity decimal.Decimal `json:"equity"`
}

// Snapshot is a read-only copy of ledger state handed to pluggable
// components. Mutating it has no effect on the ledger
type Snapshot struct {
	Cash      decimal.Decimal
	Positions map[string]decimal.Decimal
}

// Ledger is the authoritative record of cash, positions and the historical
// equity curve. It is exclusively owned by the engine for the duration of a
// run; fills are the only mutation path for positions and cash
type Ledger struct {
	initialCash decimal.Decimal
	cash        decimal.Decimal
	positions   map[string]decimal.Decimal
	curve       []EquityPoint
}
