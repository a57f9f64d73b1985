package models

import (
	"testing"
	"time"
)

func TestTicketOverduePredicates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	responded := now.Add(-2 * time.Hour)

	cases := []struct {
		name            string
		firstResponseAt *time.Time
		responseDue     *time.Time
		resolvedAt      *time.Time
		resolutionDue   *time.Time
		wantResponse    bool
		wantResolution  bool
	}{
		{name: "no clocks", wantResponse: false, wantResolution: false},
		{name: "both due in future", responseDue: &future, resolutionDue: &future},
		{name: "response past due", responseDue: &past, wantResponse: true},
		{name: "response stamped freezes the clock", firstResponseAt: &responded, responseDue: &past},
		{name: "resolution past due", resolutionDue: &past, wantResolution: true},
		{name: "resolved stamped freezes the clock", resolvedAt: &responded, resolutionDue: &past},
		{
			name:           "both past due",
			responseDue:    &past,
			resolutionDue:  &past,
			wantResponse:   true,
			wantResolution: true,
		},
	}
	for _, tc := range cases {
		ticket := Ticket{
			FirstResponseAt: tc.firstResponseAt,
			ResponseDue:     tc.responseDue,
			ResolvedAt:      tc.resolvedAt,
			ResolutionDue:   tc.resolutionDue,
		}
		if got := ticket.IsResponseOverdue(now); got != tc.wantResponse {
			t.Fatalf("%s: IsResponseOverdue expected %v, got %v", tc.name, tc.wantResponse, got)
		}
		if got := ticket.IsResolutionOverdue(now); got != tc.wantResolution {
			t.Fatalf("%s: IsResolutionOverdue expected %v, got %v", tc.name, tc.wantResolution, got)
		}
	}
}

func TestTicketTimeToResponse(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(90 * time.Minute)
	stamped := now.Add(-time.Hour)

	ticket := Ticket{ResponseDue: &due}
	remaining := ticket.TimeToResponse(now)
	if remaining == nil || *remaining != 90*time.Minute {
		t.Fatalf("expected 90m remaining, got %v", remaining)
	}

	// past due the remaining time goes negative, it does not clamp
	lateNow := due.Add(30 * time.Minute)
	remaining = ticket.TimeToResponse(lateNow)
	if remaining == nil || *remaining != -30*time.Minute {
		t.Fatalf("expected -30m remaining, got %v", remaining)
	}

	ticket.FirstResponseAt = &stamped
	if ticket.TimeToResponse(now) != nil {
		t.Fatal("responded ticket should have no response countdown")
	}

	bare := Ticket{}
	if bare.TimeToResponse(now) != nil {
		t.Fatal("ticket without a clock should have no countdown")
	}
}

func TestTicketSLAVerdict(t *testing.T) {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	responseDue := created.Add(2 * time.Hour)
	resolutionDue := created.Add(8 * time.Hour)
	onTimeResponse := created.Add(time.Hour)
	lateResponse := created.Add(3 * time.Hour)
	onTimeResolve := created.Add(6 * time.Hour)
	lateResolve := created.Add(9 * time.Hour)

	cases := []struct {
		name            string
		status          TicketStatus
		firstResponseAt *time.Time
		resolvedAt      *time.Time
		responseDue     *time.Time
		resolutionDue   *time.Time
		want            string
	}{
		{name: "open ticket has no verdict", status: TicketStatusInProgress, want: ""},
		{
			name:            "both milestones on time",
			status:          TicketStatusClosed,
			firstResponseAt: &onTimeResponse,
			resolvedAt:      &onTimeResolve,
			responseDue:     &responseDue,
			resolutionDue:   &resolutionDue,
			want:            "SLA Met",
		},
		{
			name:            "late response misses even when resolved early",
			status:          TicketStatusResolved,
			firstResponseAt: &lateResponse,
			resolvedAt:      &onTimeResolve,
			responseDue:     &responseDue,
			resolutionDue:   &resolutionDue,
			want:            "SLA Missed",
		},
		{
			name:            "late resolution misses",
			status:          TicketStatusClosed,
			firstResponseAt: &onTimeResponse,
			resolvedAt:      &lateResolve,
			responseDue:     &responseDue,
			resolutionDue:   &resolutionDue,
			want:            "SLA Missed",
		},
		{
			name:          "no response milestone on record",
			status:        TicketStatusClosed,
			resolvedAt:    &onTimeResolve,
			responseDue:   &responseDue,
			resolutionDue: &resolutionDue,
			want:          "Incomplete Data",
		},
		{
			name:            "no clocks issued",
			status:          TicketStatusClosed,
			firstResponseAt: &onTimeResponse,
			resolvedAt:      &onTimeResolve,
			want:            "Incomplete Data",
		},
		{
			name:            "exactly at the deadline still met",
			status:          TicketStatusResolved,
			firstResponseAt: &responseDue,
			resolvedAt:      &resolutionDue,
			responseDue:     &responseDue,
			resolutionDue:   &resolutionDue,
			want:            "SLA Met",
		},
	}
	for _, tc := range cases {
		ticket := Ticket{
			Status:          tc.status,
			FirstResponseAt: tc.firstResponseAt,
			ResolvedAt:      tc.resolvedAt,
			ResponseDue:     tc.responseDue,
			ResolutionDue:   tc.resolutionDue,
		}
		if got := ticket.SLAStatus(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestTicketStatusIsSettled(t *testing.T) {
	settled := []TicketStatus{TicketStatusResolved, TicketStatusClosed}
	open := []TicketStatus{TicketStatusNew, TicketStatusAssigned, TicketStatusInProgress, TicketStatusPendingCustomer}

	for _, s := range settled {
		if !s.IsSettled() {
			t.Fatalf("%s should be settled", s)
		}
	}
	for _, s := range open {
		if s.IsSettled() {
			t.Fatalf("%s should not be settled", s)
		}
	}
}
