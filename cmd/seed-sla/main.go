// seed-sla loads the default SLA matrix used by the ticket clock:
//
//   low     48h response / 168h resolution
//   medium  24h response /  72h resolution
//   high     8h response /  24h resolution
//   urgent   2h response /   8h resolution
//
// Priorities that already have a row are left untouched, so operators can
// tune the hours without the seeder putting them back.
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	// Model history hooks require actor info in context.
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetUsernameInContext(ctx, "seed-sla")

	defaults := []models.NewSLALevel{
		{Priority: models.PriorityLow, ResponseTimeHours: 48, ResolutionTimeHours: 168},
		{Priority: models.PriorityMedium, ResponseTimeHours: 24, ResolutionTimeHours: 72},
		{Priority: models.PriorityHigh, ResponseTimeHours: 8, ResolutionTimeHours: 24},
		{Priority: models.PriorityUrgent, ResponseTimeHours: 2, ResolutionTimeHours: 8},
	}

	for _, input := range defaults {
		var existing models.SLALevel
		err := db.WithContext(ctx).Model(&models.SLALevel{}).
			Where("priority = ?", input.Priority).First(&existing).Error
		if err == nil {
			fmt.Printf("SLA level %q already present (%dh/%dh), skipping\n",
				input.Priority, existing.ResponseTimeHours, existing.ResolutionTimeHours)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup SLA level %q: %v\n", input.Priority, err)
			os.Exit(1)
		}

		level, err := models.CreateSLALevel(ctx, &input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create SLA level %q: %v\n", input.Priority, err)
			os.Exit(1)
		}
		fmt.Printf("Created SLA level %q (%dh/%dh)\n",
			level.Priority, level.ResponseTimeHours, level.ResolutionTimeHours)
	}
}
