package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one entry in a register cart: an item reference, a positive
// quantity, and the unit price frozen at the moment the item was added.
type CartLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal returns unit price x quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an in-progress register sale. Lines are ordered, unique by item id;
// at most one coupon is applied at a time.
type Cart struct {
	SessionID         string     `json:"session_id"`
	Lines             []CartLine `json:"lines"`
	AppliedCouponCode *string    `json:"applied_coupon_code,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Subtotal sums all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.Lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

// AddLine merges by item id: re-adding an item bumps its quantity instead of
// creating a duplicate line. The frozen price of the existing line wins.
func (c *Cart) AddLine(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == line.ItemID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity updates a line's quantity; qty <= 0 removes the line.
// Returns false if the item is not in the cart.
func (c *Cart) SetQuantity(itemID uuid.UUID, qty int) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			if qty <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = qty
			}
			return true
		}
	}
	return false
}

// RemoveLine deletes a line by item id. Returns false if absent.
func (c *Cart) RemoveLine(itemID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsAny reports whether the cart holds at least one line whose item id
// is in the given set.
func (c *Cart) ContainsAny(itemIDs []uuid.UUID) bool {
	if len(itemIDs) == 0 {
		return false
	}
	wanted := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	for _, line := range c.Lines {
		if _, ok := wanted[line.ItemID]; ok {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
