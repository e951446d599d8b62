package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCartSubtotal(t *testing.T) {
	cart := &Cart{Lines: []CartLine{
		{ItemID: uuid.New(), Quantity: 2, UnitPrice: price("4.50")},
		{ItemID: uuid.New(), Quantity: 1, UnitPrice: price("10.00")},
	}}

	assert.True(t, price("19.00").Equal(cart.Subtotal()))
}

func TestCartAddLineMergesByItemID(t *testing.T) {
	itemID := uuid.New()
	cart := &Cart{}

	cart.AddLine(CartLine{ItemID: itemID, Quantity: 1, UnitPrice: price("5.00")})
	// The second add carries a different price; the frozen price wins.
	cart.AddLine(CartLine{ItemID: itemID, Quantity: 2, UnitPrice: price("7.00")})

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.True(t, price("5.00").Equal(cart.Lines[0].UnitPrice))
}

func TestCartSetQuantity(t *testing.T) {
	itemID := uuid.New()
	cart := &Cart{Lines: []CartLine{{ItemID: itemID, Quantity: 2, UnitPrice: price("1.00")}}}

	assert.True(t, cart.SetQuantity(itemID, 5))
	assert.Equal(t, 5, cart.Lines[0].Quantity)

	// Zero quantity removes the line.
	assert.True(t, cart.SetQuantity(itemID, 0))
	assert.True(t, cart.IsEmpty())

	assert.False(t, cart.SetQuantity(uuid.New(), 1))
}

func TestCartRemoveLine(t *testing.T) {
	itemID := uuid.New()
	cart := &Cart{Lines: []CartLine{{ItemID: itemID, Quantity: 1, UnitPrice: price("1.00")}}}

	assert.False(t, cart.RemoveLine(uuid.New()))
	assert.True(t, cart.RemoveLine(itemID))
	assert.True(t, cart.IsEmpty())
}

func TestCartContainsAny(t *testing.T) {
	inCart := uuid.New()
	cart := &Cart{Lines: []CartLine{{ItemID: inCart, Quantity: 1, UnitPrice: price("1.00")}}}

	assert.True(t, cart.ContainsAny([]uuid.UUID{uuid.New(), inCart}))
	assert.False(t, cart.ContainsAny([]uuid.UUID{uuid.New()}))
	assert.False(t, cart.ContainsAny(nil))
}
