package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"save10", "SAVE10"},
		{"  Save10  ", "SAVE10"},
		{"SAVE10", "SAVE10"},
		{"\tbogo-deal \n", "BOGO-DEAL"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCode(tc.in))
	}
}

func TestCouponNormalizeCodeInPlace(t *testing.T) {
	c := Coupon{Code: "  vendor10 "}
	c.NormalizeCode()
	assert.Equal(t, "VENDOR10", c.Code)
}

func TestBOGOQuantitiesDefaults(t *testing.T) {
	two, zero := 2, 0

	c := Coupon{}
	buy, get := c.BOGOQuantities()
	assert.Equal(t, 1, buy)
	assert.Equal(t, 1, get)

	c = Coupon{BuyQuantity: &two, GetQuantity: &zero}
	buy, get = c.BOGOQuantities()
	assert.Equal(t, 2, buy)
	assert.Equal(t, 1, get)
}
