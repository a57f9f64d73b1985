package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceForQuantity(t *testing.T) {
	tier2Qty, tier3Qty := 50, 200
	tier2Price := decimal.NewFromFloat(5.75)
	tier3Price := decimal.NewFromFloat(4.95)

	item := PrintServiceItem{
		Tier1Qty:   1,
		Tier1Price: decimal.NewFromFloat(6.50),
		Tier2Qty:   &tier2Qty,
		Tier2Price: &tier2Price,
		Tier3Qty:   &tier3Qty,
		Tier3Price: &tier3Price,
	}

	cases := []struct {
		quantity int
		expected string
	}{
		{1, "6.50"},
		{49, "6.50"},
		{50, "5.75"},
		{199, "5.75"},
		{200, "4.95"},
		{5000, "4.95"},
	}
	for _, tc := range cases {
		got := item.PriceForQuantity(tc.quantity)
		if got.StringFixed(2) != tc.expected {
			t.Fatalf("qty %d expected %s, got %s", tc.quantity, tc.expected, got.StringFixed(2))
		}
	}
}

func TestPriceForQuantitySingleTier(t *testing.T) {
	item := PrintServiceItem{
		Tier1Qty:   1,
		Tier1Price: decimal.NewFromFloat(12.00),
	}
	for _, qty := range []int{1, 100, 10000} {
		if got := item.PriceForQuantity(qty); got.StringFixed(2) != "12.00" {
			t.Fatalf("qty %d expected 12.00, got %s", qty, got.StringFixed(2))
		}
	}
}
