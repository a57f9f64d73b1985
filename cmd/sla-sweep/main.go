// sla-sweep runs the periodic deadline pass: lists open tickets already past
// an SLA clock, expires sent bid sheets and print estimates whose valid-until
// date has gone by, and latches the breach flag on project cards past their
// SLA deadline.
//
// Meant to run from cron every few minutes. A redis lock keeps overlapping
// runs from doubling up.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... REDIS_HOST=... go run ./cmd/sla-sweep
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	ctx = utils.SetUserIdInContext(ctx, 0)
	ctx = utils.SetUserNameInContext(ctx, "SLASweep")

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sla-sweep: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	release, err := utils.NamedLock(ctx, "sla-sweep", "cmd/sla-sweep", "run")
	if err != nil {
		return err
	}
	defer release()

	overdue, err := models.GetOverdueTickets(ctx)
	if err != nil {
		return fmt.Errorf("overdue tickets: %w", err)
	}
	for _, t := range overdue {
		fmt.Printf("overdue ticket %s (%s): status=%s\n", t.TicketNumber, t.Priority, t.Status)
	}

	expiredBids, err := models.MarkExpiredBidSheets(ctx)
	if err != nil {
		return fmt.Errorf("expire bid sheets: %w", err)
	}

	expiredEstimates, err := models.MarkExpiredPrintEstimates(ctx)
	if err != nil {
		return fmt.Errorf("expire print estimates: %w", err)
	}

	breachedCards, err := models.MarkBreachedProjectCards(ctx)
	if err != nil {
		return fmt.Errorf("latch card breaches: %w", err)
	}

	fmt.Printf("sweep done: overdue_tickets=%d expired_bids=%d expired_estimates=%d breached_cards=%d\n",
		len(overdue), expiredBids, expiredEstimates, breachedCards)
	return nil
}
