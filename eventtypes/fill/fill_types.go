package fill

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Fill is the simulated execution of an order: a signed quantity traded at
// a price with an associated transaction cost
type Fill struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Time     time.Time
}
