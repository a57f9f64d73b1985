// seed-admin creates or updates the back-office admin user (username: bltAdmin)
// and makes sure the company info row exists.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
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

const (
	adminUsername = "bltAdmin"
	adminPassword = "Blu3line@dmin"
	adminName     = "Blueline Admin"
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
	ctx = utils.SetUsernameInContext(ctx, adminUsername)
	ctx = utils.SetIsAdminInContext(ctx, true)

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashedStr := string(hashed)

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			Username: adminUsername,
			Name:     adminName,
			Password: hashedStr,
			IsActive: utils.NewTrue(),
			Role:     models.UserRoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q (role=Admin)\n", adminUsername)
	} else {
		// Update existing user: ensure password and admin role
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).Updates(map[string]any{
			"password":  hashedStr,
			"name":      adminName,
			"is_active": utils.NewTrue(),
			"role":      models.UserRoleAdmin,
		}).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
			os.Exit(1)
		}
		_ = existing.RemoveAllRedis()
		fmt.Printf("Updated admin user: username=%q (role=Admin)\n", adminUsername)
	}

	// First read seeds the row with the shop defaults when the table is empty.
	info, err := models.GetCompanyInfo(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to ensure company info: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Company info ready: %q\n", info.Name)
}
