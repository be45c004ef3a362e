package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Order is a signed target delta for one symbol, generated during a
// rebalance event and consumed in the same simulation step
type Order struct {
	ID       uuid.UUID
	Symbol   string
	Quantity decimal.Decimal
	Time     time.Time
}
