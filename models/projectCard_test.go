package models

import (
	"testing"
	"time"
)

func TestCardStatusesForDepartmentOrder(t *testing.T) {
	tech := CardStatusesForDepartment(DepartmentTechnology)
	wantTech := []CardStatus{
		CardStatusTechBacklog,
		CardStatusTechInProgress,
		CardStatusTechAwaitingClient,
		CardStatusTechTesting,
		CardStatusTechCompleted,
		CardStatusOnHold,
		CardStatusCancelled,
	}
	if len(tech) != len(wantTech) {
		t.Fatalf("technology board expected %d columns, got %d", len(wantTech), len(tech))
	}
	for i := range wantTech {
		if tech[i] != wantTech[i] {
			t.Fatalf("technology column %d expected %s, got %s", i, wantTech[i], tech[i])
		}
	}

	printBoard := CardStatusesForDepartment(DepartmentPrintDesign)
	wantPrint := []CardStatus{
		CardStatusPrintDesignBrief,
		CardStatusPrintDesignPhase,
		CardStatusPrintClientApproval,
		CardStatusPrintProduction,
		CardStatusPrintQualityCheck,
		CardStatusPrintDelivered,
		CardStatusOnHold,
		CardStatusCancelled,
	}
	if len(printBoard) != len(wantPrint) {
		t.Fatalf("print board expected %d columns, got %d", len(wantPrint), len(printBoard))
	}
	for i := range wantPrint {
		if printBoard[i] != wantPrint[i] {
			t.Fatalf("print column %d expected %s, got %s", i, wantPrint[i], printBoard[i])
		}
	}
}

func TestStatusInDepartment(t *testing.T) {
	if !statusInDepartment(DepartmentTechnology, CardStatusTechTesting) {
		t.Fatal("tech_testing belongs to the technology board")
	}
	if statusInDepartment(DepartmentTechnology, CardStatusPrintProduction) {
		t.Fatal("print_production does not belong to the technology board")
	}
	if statusInDepartment(DepartmentPrintDesign, CardStatusTechBacklog) {
		t.Fatal("tech_backlog does not belong to the print board")
	}
	// shared columns live on both boards
	for _, dept := range []Department{DepartmentTechnology, DepartmentPrintDesign} {
		if !statusInDepartment(dept, CardStatusOnHold) {
			t.Fatalf("on_hold should belong to the %s board", dept)
		}
		if !statusInDepartment(dept, CardStatusCancelled) {
			t.Fatalf("cancelled should belong to the %s board", dept)
		}
	}
}

func TestApplyCardStatusStamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	// first move off the entry column starts the card
	card := ProjectCard{Department: DepartmentTechnology, Status: CardStatusTechBacklog}
	updates := map[string]interface{}{}
	applyCardStatusStamps(&card, CardStatusTechInProgress, now, updates)
	if updates["Status"] != CardStatusTechInProgress {
		t.Fatalf("status update expected, got %v", updates["Status"])
	}
	if updates["StartedAt"] != now {
		t.Fatalf("move off the entry column should start the card, got %v", updates["StartedAt"])
	}
	if _, ok := updates["CompletedAt"]; ok {
		t.Fatal("non-terminal move should not touch CompletedAt")
	}

	// on hold from the entry column does not start the clock
	card = ProjectCard{Department: DepartmentTechnology, Status: CardStatusTechBacklog}
	updates = map[string]interface{}{}
	applyCardStatusStamps(&card, CardStatusOnHold, now, updates)
	if _, ok := updates["StartedAt"]; ok {
		t.Fatal("on_hold should not start the card")
	}

	// a started card keeps its original start stamp
	card = ProjectCard{Department: DepartmentTechnology, Status: CardStatusTechInProgress, StartedAt: &earlier}
	updates = map[string]interface{}{}
	applyCardStatusStamps(&card, CardStatusTechTesting, now, updates)
	if _, ok := updates["StartedAt"]; ok {
		t.Fatal("started card should keep its original StartedAt")
	}

	// the finish column completes the card
	card = ProjectCard{Department: DepartmentTechnology, Status: CardStatusTechTesting, StartedAt: &earlier}
	updates = map[string]interface{}{}
	applyCardStatusStamps(&card, CardStatusTechCompleted, now, updates)
	if updates["CompletedAt"] != now {
		t.Fatalf("finish column should complete the card, got %v", updates["CompletedAt"])
	}

	// leaving the finish column re-opens it
	card = ProjectCard{Department: DepartmentTechnology, Status: CardStatusTechCompleted, StartedAt: &earlier, CompletedAt: &earlier}
	updates = map[string]interface{}{}
	applyCardStatusStamps(&card, CardStatusTechTesting, now, updates)
	v, ok := updates["CompletedAt"]
	if !ok || v != nil {
		t.Fatalf("leaving the finish column should clear CompletedAt, got %v", v)
	}
}

func TestLatchSLABreach(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	breached := true

	// past the deadline with no completion latches
	card := ProjectCard{SLADueDate: &past}
	updates := map[string]interface{}{}
	latchSLABreach(&card, updates, now)
	if updates["SLABreached"] != true {
		t.Fatal("card past its deadline should latch")
	}

	// before the deadline nothing happens
	card = ProjectCard{SLADueDate: &future}
	updates = map[string]interface{}{}
	latchSLABreach(&card, updates, now)
	if _, ok := updates["SLABreached"]; ok {
		t.Fatal("card inside its deadline should not latch")
	}

	// no clock, no latch
	card = ProjectCard{}
	updates = map[string]interface{}{}
	latchSLABreach(&card, updates, now)
	if _, ok := updates["SLABreached"]; ok {
		t.Fatal("card without a deadline should not latch")
	}

	// an already latched card is never re-evaluated
	card = ProjectCard{SLADueDate: &past, SLABreached: &breached}
	updates = map[string]interface{}{}
	latchSLABreach(&card, updates, now)
	if _, ok := updates["SLABreached"]; ok {
		t.Fatal("latched card should stay latched without rewriting the flag")
	}

	// completing in the same save stops the clock, even past the deadline
	card = ProjectCard{SLADueDate: &past}
	updates = map[string]interface{}{"CompletedAt": now}
	latchSLABreach(&card, updates, now)
	if _, ok := updates["SLABreached"]; ok {
		t.Fatal("completing the card should stop the latch")
	}

	// re-opening in the same save exposes the card to the latch again
	card = ProjectCard{SLADueDate: &past, CompletedAt: &past}
	updates = map[string]interface{}{"CompletedAt": nil}
	latchSLABreach(&card, updates, now)
	if updates["SLABreached"] != true {
		t.Fatal("re-opened card past its deadline should latch")
	}

	// a completed card is not latched after the fact
	card = ProjectCard{SLADueDate: &past, CompletedAt: &past}
	updates = map[string]interface{}{}
	latchSLABreach(&card, updates, now)
	if _, ok := updates["SLABreached"]; ok {
		t.Fatal("completed card should not latch")
	}
}

func TestApplySLADueDate(t *testing.T) {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	card := ProjectCard{CreatedAt: created, SLAHours: 72}
	card.applySLADueDate()
	if card.SLADueDate == nil || !card.SLADueDate.Equal(created.Add(72*time.Hour)) {
		t.Fatalf("expected due date 72h after creation, got %v", card.SLADueDate)
	}

	// the clock is set once
	firstDue := *card.SLADueDate
	card.SLAHours = 8
	card.applySLADueDate()
	if !card.SLADueDate.Equal(firstDue) {
		t.Fatal("existing due date should not be recalculated")
	}

	// zero hours carries no clock
	bare := ProjectCard{CreatedAt: created}
	bare.applySLADueDate()
	if bare.SLADueDate != nil {
		t.Fatalf("zero SLA hours should carry no clock, got %v", bare.SLADueDate)
	}
}

func TestProjectCardIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	card := ProjectCard{SLADueDate: &past}
	if !card.IsOverdue(now) {
		t.Fatal("open card past its deadline is overdue")
	}

	card = ProjectCard{SLADueDate: &future}
	if card.IsOverdue(now) {
		t.Fatal("card inside its deadline is not overdue")
	}

	card = ProjectCard{SLADueDate: &past, CompletedAt: &past}
	if card.IsOverdue(now) {
		t.Fatal("completed card is never overdue")
	}

	card = ProjectCard{}
	if card.IsOverdue(now) {
		t.Fatal("card without a clock is never overdue")
	}
}
