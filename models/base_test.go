package models

import (
	"testing"
	"time"
)

func TestCalculateDueDate(t *testing.T) {
	// mid-month anchor so the end-of-month cases are unambiguous
	anchor := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name       string
		terms      PaymentTerms
		customDays int
		expected   time.Time
	}{
		{"due on receipt", PaymentTermsDueOnReceipt, 0, anchor},
		{"net 15", PaymentTermsNet15, 0, anchor.AddDate(0, 0, 15)},
		{"net 30", PaymentTermsNet30, 0, anchor.AddDate(0, 0, 30)},
		{"net 45", PaymentTermsNet45, 0, anchor.AddDate(0, 0, 45)},
		{"net 60", PaymentTermsNet60, 0, anchor.AddDate(0, 0, 60)},
		{"end of month", PaymentTermsDueEndOfMonth, 0, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"end of next month", PaymentTermsDueEndOfNextMonth, 0, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		{"custom days", PaymentTermsCustom, 7, anchor.AddDate(0, 0, 7)},
	}
	for _, tc := range cases {
		got := calculateDueDate(anchor, tc.terms, tc.customDays)
		if got == nil || !got.Equal(tc.expected) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestCalculateDueDateEndOfMonthFromLastDay(t *testing.T) {
	// issued on January 31st the end-of-month terms stay in January
	anchor := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	got := calculateDueDate(anchor, PaymentTermsDueEndOfMonth, 0)
	if got == nil || !got.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end of month from Jan 31 expected Jan 31, got %v", got)
	}

	// and next-month terms land on February 28th, not an overflow date
	got = calculateDueDate(anchor, PaymentTermsDueEndOfNextMonth, 0)
	if got == nil || !got.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end of next month from Jan 31 expected Feb 28, got %v", got)
	}
}
