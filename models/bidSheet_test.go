package models

import "testing"

func TestCanTransitionBidSheet(t *testing.T) {
	cases := []struct {
		from    BidSheetStatus
		to      BidSheetStatus
		allowed bool
	}{
		{BidSheetStatusDraft, BidSheetStatusSent, true},
		{BidSheetStatusDraft, BidSheetStatusAccepted, false},
		{BidSheetStatusDraft, BidSheetStatusRejected, false},
		{BidSheetStatusSent, BidSheetStatusAccepted, true},
		{BidSheetStatusSent, BidSheetStatusRejected, true},
		{BidSheetStatusSent, BidSheetStatusExpired, true},
		{BidSheetStatusSent, BidSheetStatusDraft, false},
		// re-sending an expired bid re-opens it
		{BidSheetStatusExpired, BidSheetStatusSent, true},
		{BidSheetStatusExpired, BidSheetStatusAccepted, false},
		// accepted and rejected are terminal
		{BidSheetStatusAccepted, BidSheetStatusSent, false},
		{BidSheetStatusAccepted, BidSheetStatusRejected, false},
		{BidSheetStatusRejected, BidSheetStatusSent, false},
	}
	for _, tc := range cases {
		if got := canTransitionBidSheet(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
