// Package order holds the transient order type passed from the execution
// handler's sizing stage to its fill stage
package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// New creates an order with a fresh identifier
func New(symbol string, quantity decimal.Decimal, t time.Time) (Order, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Order{}, err
	}
	return Order{
		ID:       id,
		Symbol:   symbol,
		Quantity: quantity,
		Time:     t,
	}, nil
}

// IsBuy returns whether the order increases the position
func (o *Order) IsBuy() bool {
	return o.Quantity.GreaterThan(decimal.Zero)
}
