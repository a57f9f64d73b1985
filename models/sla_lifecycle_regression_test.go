package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/models/reports"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

func TestTicketSLALifecycleFeedsComplianceAndBreachReports(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	// Wire env for config.Connect* helpers.
	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "blt_test")

	// Connect deps.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	// Migrate schema (in a fresh DB).
	models.MigrateTable()

	// Model hooks write history entries and need an actor.
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")
	ctx = utils.SetUsernameInContext(ctx, "test@local")

	db := config.GetDB()
	if db == nil {
		t.Fatalf("db is nil after ConnectDatabaseWithRetry")
	}

	// Real staff row so notes and history point at an existing user.
	tech, err := models.CreateUser(ctx, &models.NewUser{
		Username: "test.tech",
		Name:     "Test Tech",
		Password: "Work$hop2026",
		IsActive: utils.NewTrue(),
		Role:     models.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	ctx = utils.SetUserIdInContext(ctx, tech.ID)

	// SLA matrix row for urgent work: respond in 2h, resolve in 8h.
	if _, err := models.CreateSLALevel(ctx, &models.NewSLALevel{
		Priority:            models.PriorityUrgent,
		ResponseTimeHours:   2,
		ResolutionTimeHours: 8,
	}); err != nil {
		t.Fatalf("CreateSLALevel: %v", err)
	}

	// 1) Creating an urgent ticket issues both clocks from the matrix.
	ticket, err := models.CreateTicket(ctx, &models.NewTicket{
		Title:         "Server room AC failure",
		Description:   "Temperature alarm firing since 06:40.",
		CustomerName:  "Harbor Dental Group",
		CustomerEmail: "office@harbordental.test",
		Category:      models.TicketCategoryHardware,
		Priority:      models.PriorityUrgent,
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.ResponseDue == nil || ticket.ResolutionDue == nil {
		t.Fatalf("expected both SLA clocks on urgent ticket; got response=%v resolution=%v", ticket.ResponseDue, ticket.ResolutionDue)
	}
	if got := ticket.ResponseDue.Sub(ticket.CreatedAt); got != 2*time.Hour {
		t.Fatalf("expected response clock 2h from creation; got %s", got)
	}
	if got := ticket.ResolutionDue.Sub(ticket.CreatedAt); got != 8*time.Hour {
		t.Fatalf("expected resolution clock 8h from creation; got %s", got)
	}

	// 2) The first customer-visible note stamps the response milestone.
	if _, err := models.CreateTicketNote(ctx, &models.NewTicketNote{
		TicketId: ticket.ID,
		Note:     "Called the site contact, technician on the way.",
	}); err != nil {
		t.Fatalf("CreateTicketNote: %v", err)
	}
	fresh, err := models.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("GetTicket after note: %v", err)
	}
	if fresh.FirstResponseAt == nil {
		t.Fatalf("expected first_response_at stamped by public note")
	}
	if fresh.FirstResponseAt.After(*fresh.ResponseDue) {
		t.Fatalf("response stamped after the clock: %s > %s", fresh.FirstResponseAt, fresh.ResponseDue)
	}

	// 3) Resolving stamps the resolution milestone.
	resolved, err := models.UpdateTicketStatus(ctx, ticket.ID, models.TicketStatusResolved)
	if err != nil {
		t.Fatalf("UpdateTicketStatus(resolved): %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatalf("expected resolved_at stamped on resolve")
	}

	// 4) The compliance report counts both milestones as met.
	compliance, err := reports.GetSLAComplianceReport(ctx)
	if err != nil {
		t.Fatalf("GetSLAComplianceReport: %v", err)
	}
	if compliance.TotalTickets != 1 || compliance.RespondedTickets != 1 || compliance.ResolvedTickets != 1 {
		t.Fatalf("expected 1/1/1 ticket counts; got total=%d responded=%d resolved=%d",
			compliance.TotalTickets, compliance.RespondedTickets, compliance.ResolvedTickets)
	}
	if compliance.ResponseOnTime != 1 || compliance.ResolutionOnTime != 1 {
		t.Fatalf("expected both milestones on time; got response=%d resolution=%d",
			compliance.ResponseOnTime, compliance.ResolutionOnTime)
	}
	if compliance.ResponseSLAPercentage.Cmp(decimal.NewFromInt(100)) != 0 {
		t.Fatalf("expected response SLA percentage 100; got %s", compliance.ResponseSLAPercentage.String())
	}
	if len(compliance.OverdueResponse) != 0 || len(compliance.OverdueResolution) != 0 {
		t.Fatalf("expected no overdue tickets; got response=%d resolution=%d",
			len(compliance.OverdueResponse), len(compliance.OverdueResolution))
	}

	// 5) Bid sheet totals run through the document calculator on create.
	customer, err := models.CreateCustomer(ctx, &models.NewCustomer{
		Name:  "Harbor Dental Group",
		Email: "office@harbordental.test",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	validUntil := time.Now().AddDate(0, 0, 14)
	bid, err := models.CreateBidSheet(ctx, &models.NewBidSheet{
		Title:              "Suite expansion cabling",
		CustomerId:         customer.ID,
		ValidUntil:         &validUntil,
		DiscountPercentage: decimal.NewFromInt(5),
		TaxPercentage:      decimal.NewFromFloat(8.25),
		Items: []models.NewBidItem{
			{Description: "Cat6 drop", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.NewFromFloat(185), UnitType: "each", SortOrder: 1},
			{Description: "Access point setup", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(240), UnitType: "each", SortOrder: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateBidSheet: %v", err)
	}
	if bid.SubTotal.Cmp(decimal.NewFromInt(2700)) != 0 {
		t.Fatalf("expected sub_total 2700; got %s", bid.SubTotal.String())
	}
	if bid.DiscountAmount.Cmp(decimal.NewFromInt(135)) != 0 {
		t.Fatalf("expected discount 135; got %s", bid.DiscountAmount.String())
	}
	if bid.TaxAmount.Cmp(decimal.NewFromFloat(211.61)) != 0 {
		t.Fatalf("expected tax 211.61; got %s", bid.TaxAmount.String())
	}
	if bid.TotalAmount.Cmp(decimal.NewFromFloat(2776.61)) != 0 {
		t.Fatalf("expected total 2776.61; got %s", bid.TotalAmount.String())
	}

	// Adding then removing a line restores the derived fields exactly.
	withRush, err := models.AddBidItem(ctx, bid.ID, &models.NewBidItem{
		Description: "After-hours rush fee",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromFloat(350),
	})
	if err != nil {
		t.Fatalf("AddBidItem: %v", err)
	}
	if withRush.SubTotal.Cmp(decimal.NewFromInt(3050)) != 0 {
		t.Fatalf("expected sub_total 3050 after add; got %s", withRush.SubTotal.String())
	}
	var rushItemId int
	for _, item := range withRush.Items {
		if item.Description == "After-hours rush fee" {
			rushItemId = item.ID
		}
	}
	if rushItemId == 0 {
		t.Fatalf("added line not found on the refreshed bid")
	}
	restored, err := models.DeleteBidItem(ctx, rushItemId)
	if err != nil {
		t.Fatalf("DeleteBidItem: %v", err)
	}
	if restored.SubTotal.Cmp(decimal.NewFromInt(2700)) != 0 {
		t.Fatalf("expected sub_total restored to 2700; got %s", restored.SubTotal.String())
	}
	if restored.TotalAmount.Cmp(decimal.NewFromFloat(2776.61)) != 0 {
		t.Fatalf("expected total restored to 2776.61; got %s", restored.TotalAmount.String())
	}

	// A draft cannot jump straight to accepted.
	if _, err := models.UpdateBidSheetStatus(ctx, bid.ID, models.BidSheetStatusAccepted); err == nil {
		t.Fatalf("expected draft -> accepted to be rejected")
	}
	if _, err := models.UpdateBidSheetStatus(ctx, bid.ID, models.BidSheetStatusSent); err != nil {
		t.Fatalf("UpdateBidSheetStatus(sent): %v", err)
	}

	// Backdate the validity window, then let the sweep expire it.
	if err := db.WithContext(ctx).
		Exec("UPDATE bid_sheets SET valid_until = ? WHERE id = ?", time.Now().Add(-48*time.Hour), bid.ID).Error; err != nil {
		t.Fatalf("backdate valid_until: %v", err)
	}
	expired, err := models.MarkExpiredBidSheets(ctx)
	if err != nil {
		t.Fatalf("MarkExpiredBidSheets: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired bid; got %d", expired)
	}
	bidAfter, err := models.GetBidSheet(ctx, bid.ID)
	if err != nil {
		t.Fatalf("GetBidSheet after sweep: %v", err)
	}
	if bidAfter.Status != models.BidSheetStatusExpired {
		t.Fatalf("expected bid status expired; got %s", bidAfter.Status)
	}
	// Re-sending an expired bid re-opens it.
	if _, err := models.UpdateBidSheetStatus(ctx, bid.ID, models.BidSheetStatusSent); err != nil {
		t.Fatalf("re-send expired bid: %v", err)
	}

	// 6) Board cards latch the breach flag through the sweep.
	slaHours := 1
	card, err := models.CreateProjectCard(ctx, &models.NewProjectCard{
		Title:      "Install drops for suite expansion",
		Department: models.DepartmentTechnology,
		Priority:   models.PriorityHigh,
		SLAHours:   &slaHours,
	})
	if err != nil {
		t.Fatalf("CreateProjectCard: %v", err)
	}
	if card.Status != models.CardStatusTechBacklog {
		t.Fatalf("expected new card in tech_backlog; got %s", card.Status)
	}
	if card.SLADueDate == nil {
		t.Fatalf("expected sla_due_date issued at creation")
	}
	if err := db.WithContext(ctx).
		Exec("UPDATE project_cards SET sla_due_date = ? WHERE id = ?", time.Now().Add(-2*time.Hour), card.ID).Error; err != nil {
		t.Fatalf("backdate sla_due_date: %v", err)
	}
	breached, err := models.MarkBreachedProjectCards(ctx)
	if err != nil {
		t.Fatalf("MarkBreachedProjectCards: %v", err)
	}
	if breached != 1 {
		t.Fatalf("expected 1 breached card; got %d", breached)
	}
	// Second pass finds nothing, the latch is already set.
	again, err := models.MarkBreachedProjectCards(ctx)
	if err != nil {
		t.Fatalf("MarkBreachedProjectCards(second): %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no cards on second sweep; got %d", again)
	}
	cardAfter, err := models.GetProjectCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetProjectCard after sweep: %v", err)
	}
	if cardAfter.SLABreached == nil || !*cardAfter.SLABreached {
		t.Fatalf("expected sla_breached latched on card")
	}

	// Finishing the card keeps the latch.
	moved, err := models.MoveProjectCard(ctx, card.ID, models.CardStatusTechCompleted, 0)
	if err != nil {
		t.Fatalf("MoveProjectCard(tech_completed): %v", err)
	}
	if moved.CompletedAt == nil {
		t.Fatalf("expected completed_at stamped on finish column")
	}
	if moved.SLABreached == nil || !*moved.SLABreached {
		t.Fatalf("expected breach latch to survive completion")
	}

	boardReport, err := reports.GetCardSLAReport(ctx)
	if err != nil {
		t.Fatalf("GetCardSLAReport: %v", err)
	}
	if boardReport.TotalCards != 1 || boardReport.BreachedCards != 1 {
		t.Fatalf("expected 1 card / 1 breach; got total=%d breached=%d",
			boardReport.TotalCards, boardReport.BreachedCards)
	}
	if boardReport.ActiveCards != 0 {
		t.Fatalf("expected no active cards after completion; got %d", boardReport.ActiveCards)
	}
	if boardReport.BreachRate.Cmp(decimal.NewFromInt(100)) != 0 {
		t.Fatalf("expected breach rate 100; got %s", boardReport.BreachRate.String())
	}
	if len(boardReport.RecentBreaches) != 1 {
		t.Fatalf("expected 1 recent breach; got %d", len(boardReport.RecentBreaches))
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("blt-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("blt-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=blt_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
