package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestCalculateLineTotal(t *testing.T) {
	cases := []struct {
		name      string
		quantity  string
		unitPrice string
		setupFee  string
		expected  string
	}{
		{"whole quantities", "10", "2.00", "0", "20.00"},
		{"setup fee added before rounding", "1", "50.00", "25.00", "75.00"},
		{"rounds half up at the cent", "3", "0.335", "0", "1.01"},
		{"sub-cent product rounds down", "1.5", "0.333", "0", "0.50"},
		{"fractional quantity", "2.5", "4.10", "0", "10.25"},
		{"zero price", "100", "0", "0", "0.00"},
	}
	for _, tc := range cases {
		got := CalculateLineTotal(dec(t, tc.quantity), dec(t, tc.unitPrice), dec(t, tc.setupFee))
		if got.StringFixed(2) != tc.expected {
			t.Fatalf("%s: CalculateLineTotal(%s, %s, %s) expected %s, got %s",
				tc.name, tc.quantity, tc.unitPrice, tc.setupFee, tc.expected, got.StringFixed(2))
		}
	}
}

func TestCalculateDocumentTotals(t *testing.T) {
	cases := []struct {
		name           string
		lineTotals     []string
		discount       string
		tax            string
		subTotal       string
		discountAmount string
		taxAmount      string
		totalAmount    string
	}{
		{
			// two items: 10 x 2.00 and 1 x 50.00 + 25.00 setup,
			// 10% discount and 8.25% tax
			name:           "reference document",
			lineTotals:     []string{"20.00", "75.00"},
			discount:       "10",
			tax:            "8.25",
			subTotal:       "95.00",
			discountAmount: "9.50",
			taxAmount:      "7.05",
			totalAmount:    "92.55",
		},
		{
			name:           "no items zeroes everything",
			lineTotals:     nil,
			discount:       "10",
			tax:            "8.25",
			subTotal:       "0.00",
			discountAmount: "0.00",
			taxAmount:      "0.00",
			totalAmount:    "0.00",
		},
		{
			name:           "no discount no tax",
			lineTotals:     []string{"12.34", "0.01"},
			discount:       "0",
			tax:            "0",
			subTotal:       "12.35",
			discountAmount: "0.00",
			taxAmount:      "0.00",
			totalAmount:    "12.35",
		},
		{
			name:           "full discount",
			lineTotals:     []string{"19.99"},
			discount:       "100",
			tax:            "8.25",
			subTotal:       "19.99",
			discountAmount: "19.99",
			taxAmount:      "0.00",
			totalAmount:    "0.00",
		},
		{
			name:           "discount rounds half up",
			lineTotals:     []string{"10.01"},
			discount:       "2.5",
			tax:            "0",
			subTotal:       "10.01",
			discountAmount: "0.25",
			taxAmount:      "0.00",
			totalAmount:    "9.76",
		},
		{
			name:           "tax applies after discount",
			lineTotals:     []string{"100.00"},
			discount:       "50",
			tax:            "10",
			subTotal:       "100.00",
			discountAmount: "50.00",
			taxAmount:      "5.00",
			totalAmount:    "55.00",
		},
	}
	for _, tc := range cases {
		lineTotals := make([]decimal.Decimal, 0, len(tc.lineTotals))
		for _, lt := range tc.lineTotals {
			lineTotals = append(lineTotals, dec(t, lt))
		}
		got := CalculateDocumentTotals(lineTotals, dec(t, tc.discount), dec(t, tc.tax))
		if got.SubTotal.StringFixed(2) != tc.subTotal {
			t.Fatalf("%s: subtotal expected %s, got %s", tc.name, tc.subTotal, got.SubTotal.StringFixed(2))
		}
		if got.DiscountAmount.StringFixed(2) != tc.discountAmount {
			t.Fatalf("%s: discount expected %s, got %s", tc.name, tc.discountAmount, got.DiscountAmount.StringFixed(2))
		}
		if got.TaxAmount.StringFixed(2) != tc.taxAmount {
			t.Fatalf("%s: tax expected %s, got %s", tc.name, tc.taxAmount, got.TaxAmount.StringFixed(2))
		}
		if got.TotalAmount.StringFixed(2) != tc.totalAmount {
			t.Fatalf("%s: total expected %s, got %s", tc.name, tc.totalAmount, got.TotalAmount.StringFixed(2))
		}
	}
}

func TestCalculateDocumentTotalsOrderIndependent(t *testing.T) {
	forward := CalculateDocumentTotals([]decimal.Decimal{dec(t, "20.00"), dec(t, "75.00"), dec(t, "1.01")}, dec(t, "10"), dec(t, "8.25"))
	reversed := CalculateDocumentTotals([]decimal.Decimal{dec(t, "1.01"), dec(t, "75.00"), dec(t, "20.00")}, dec(t, "10"), dec(t, "8.25"))
	if !forward.TotalAmount.Equal(reversed.TotalAmount) || !forward.TaxAmount.Equal(reversed.TaxAmount) {
		t.Fatalf("totals depend on item order: %v vs %v", forward, reversed)
	}
}

func TestValidateQuantity(t *testing.T) {
	if err := ValidateQuantity(dec(t, "0.01")); err != nil {
		t.Fatalf("0.01 should be a valid quantity: %v", err)
	}
	if err := ValidateQuantity(dec(t, "0.009")); err == nil {
		t.Fatal("0.009 should be rejected")
	}
	if err := ValidateQuantity(dec(t, "0")); err == nil {
		t.Fatal("zero quantity should be rejected")
	}
	if err := ValidateQuantity(dec(t, "-1")); err == nil {
		t.Fatal("negative quantity should be rejected")
	}
}

func TestValidateUnitPriceAndSetupFee(t *testing.T) {
	if err := ValidateUnitPrice(decimal.Zero); err != nil {
		t.Fatalf("zero unit price is allowed: %v", err)
	}
	if err := ValidateUnitPrice(dec(t, "-0.01")); err == nil {
		t.Fatal("negative unit price should be rejected")
	}
	if err := ValidateSetupFee(decimal.Zero); err != nil {
		t.Fatalf("zero setup fee is allowed: %v", err)
	}
	if err := ValidateSetupFee(dec(t, "-5")); err == nil {
		t.Fatal("negative setup fee should be rejected")
	}
}

func TestValidatePercentage(t *testing.T) {
	for _, ok := range []string{"0", "100", "8.25", "99.99"} {
		if err := ValidatePercentage(dec(t, ok), "tax percentage"); err != nil {
			t.Fatalf("%s should be a valid percentage: %v", ok, err)
		}
	}
	for _, bad := range []string{"-0.01", "100.01", "150"} {
		if err := ValidatePercentage(dec(t, bad), "tax percentage"); err == nil {
			t.Fatalf("%s should be rejected", bad)
		}
	}
}
