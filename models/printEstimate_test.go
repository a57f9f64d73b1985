package models

import "testing"

func TestCanTransitionPrintEstimate(t *testing.T) {
	cases := []struct {
		from    PrintEstimateStatus
		to      PrintEstimateStatus
		allowed bool
	}{
		{PrintEstimateStatusDraft, PrintEstimateStatusSent, true},
		{PrintEstimateStatusDraft, PrintEstimateStatusApproved, false},
		{PrintEstimateStatusSent, PrintEstimateStatusApproved, true},
		{PrintEstimateStatusSent, PrintEstimateStatusDeclined, true},
		{PrintEstimateStatusSent, PrintEstimateStatusExpired, true},
		{PrintEstimateStatusSent, PrintEstimateStatusDraft, false},
		// re-sending an expired estimate re-opens it
		{PrintEstimateStatusExpired, PrintEstimateStatusSent, true},
		// approved work moves into production and on to completion
		{PrintEstimateStatusApproved, PrintEstimateStatusInProduction, true},
		{PrintEstimateStatusApproved, PrintEstimateStatusCompleted, false},
		{PrintEstimateStatusInProduction, PrintEstimateStatusCompleted, true},
		{PrintEstimateStatusInProduction, PrintEstimateStatusApproved, false},
		// declined and completed are terminal
		{PrintEstimateStatusDeclined, PrintEstimateStatusSent, false},
		{PrintEstimateStatusCompleted, PrintEstimateStatusSent, false},
	}
	for _, tc := range cases {
		if got := canTransitionPrintEstimate(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
