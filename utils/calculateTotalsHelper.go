package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	minQuantity = decimal.NewFromFloat(0.01)
	oneHundred  = decimal.NewFromInt(100)
)

// RoundCent rounds a money amount to the cent, half-up.
func RoundCent(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// CalculateLineTotal returns the rounded line amount for an item row.
// Pass decimal.Zero for setupFee on documents without setup charges.
func CalculateLineTotal(quantity decimal.Decimal, unitPrice decimal.Decimal, setupFee decimal.Decimal) decimal.Decimal {
	return RoundCent(quantity.Mul(unitPrice).Add(setupFee))
}

type DocumentTotals struct {
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// CalculateDocumentTotals recomputes header totals from scratch.
// Discount applies to the subtotal, tax applies to the discounted base.
// With no items every field is zero.
func CalculateDocumentTotals(lineTotals []decimal.Decimal, discountPercentage decimal.Decimal, taxPercentage decimal.Decimal) DocumentTotals {
	subTotal := decimal.Zero
	for _, lineTotal := range lineTotals {
		subTotal = subTotal.Add(lineTotal)
	}

	discountAmount := RoundCent(subTotal.Mul(discountPercentage).Div(oneHundred))
	taxableAmount := subTotal.Sub(discountAmount)
	taxAmount := RoundCent(taxableAmount.Mul(taxPercentage).Div(oneHundred))
	totalAmount := taxableAmount.Add(taxAmount)

	return DocumentTotals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		TotalAmount:    totalAmount,
	}
}

func ValidateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThan(minQuantity) {
		return errors.New("quantity must be at least 0.01")
	}
	return nil
}

func ValidateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}
	return nil
}

func ValidateSetupFee(setupFee decimal.Decimal) error {
	if setupFee.IsNegative() {
		return errors.New("setup fee cannot be negative")
	}
	return nil
}

// ValidatePercentage rejects out-of-range rates, never clamps them.
func ValidatePercentage(percentage decimal.Decimal, name string) error {
	if percentage.IsNegative() || percentage.GreaterThan(oneHundred) {
		return errors.New(name + " must be between 0 and 100")
	}
	return nil
}
