// seed-sample-data fills a fresh database with a small working set of demo
// rows across all four departments: two staff users, both customer books, the
// tech and print catalogs, tickets in different SLA states, a bid sheet taken
// through acceptance, an approved print estimate, Kanban cards for both
// boards, and a vehicle with a drop-off and an installation booking.
//
// Refuses to run when tickets already exist unless -force is given.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... REDIS_HOST=... go run ./cmd/seed-sample-data
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "seed-sample-data: %s: %v\n", step, err)
	os.Exit(1)
}

func main() {
	force := flag.Bool("force", false, "Seed even when tickets already exist")
	flag.Parse()

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
	ctx = utils.SetUsernameInContext(ctx, "seed-sample-data")

	if !*force {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Ticket{}).Count(&count).Error; err != nil {
			fail("count tickets", err)
		}
		if count > 0 {
			fmt.Println("tickets already exist, refusing to seed (use -force to override)")
			return
		}
	}

	ensureSLALevels(ctx, db)

	techUser := ensureUser(ctx, db, "sarah.tech", "Sarah Chen", models.PrimaryDepartmentTechnology)
	printUser := ensureUser(ctx, db, "mike.print", "Mike Alvarez", models.PrimaryDepartmentPrintDesign)

	// customer books
	bidCustomer, err := models.CreateCustomer(ctx, &models.NewCustomer{
		Name:    "Harbor Dental Group",
		Company: "Harbor Dental Group LLC",
		Email:   "frontdesk@harbordental.example.com",
		Phone:   "555-0142",
		Address: "410 Bayview Ave, Suite 2",
	})
	if err != nil {
		fail("create bid customer", err)
	}

	if _, err := models.CreateCustomerInfo(ctx, &models.NewCustomerInfo{
		CustomerEmail:   "frontdesk@harbordental.example.com",
		CustomerName:    "Harbor Dental Group",
		Company:         "Harbor Dental Group LLC",
		Phone:           "555-0142",
		ComputerMake:    "Dell",
		ComputerModel:   "OptiPlex 7010",
		OperatingSystem: "Windows 11 Pro",
	}); err != nil {
		fail("create helpdesk customer record", err)
	}

	printCustomer, err := models.CreatePrintCustomer(ctx, &models.NewPrintCustomer{
		Name:         "Lena Ortiz",
		Company:      "Ortiz Realty",
		CustomerType: models.CustomerTypeBusiness,
		Email:        "lena@ortizrealty.example.com",
		Phone:        "555-0177",
		Address:      "88 Main St",
		City:         "Rockport",
		State:        "TX",
	})
	if err != nil {
		fail("create print customer", err)
	}

	// tech catalog
	networking, err := models.CreateServiceCategory(ctx, &models.NewServiceCategory{
		Name: "Networking", Description: "Cabling and wireless", SortOrder: 1,
	})
	if err != nil {
		fail("create service category", err)
	}
	cat6, err := models.CreateServiceItem(ctx, &models.NewServiceItem{
		CategoryId:       networking.ID,
		Name:             "Cat6 Drop Installation",
		Description:      "Wall plate, patch panel termination and test",
		DefaultUnitPrice: decimal.NewFromFloat(185),
	})
	if err != nil {
		fail("create service item", err)
	}
	wap, err := models.CreateServiceItem(ctx, &models.NewServiceItem{
		CategoryId:       networking.ID,
		Name:             "Wireless Access Point Setup",
		Description:      "Mount, power and controller adoption",
		DefaultUnitPrice: decimal.NewFromFloat(240),
	})
	if err != nil {
		fail("create service item", err)
	}

	// print catalog
	signage, err := models.CreatePrintServiceCategory(ctx, &models.NewPrintServiceCategory{
		Name: "Signage", Description: "Banners and rigid signs", SortOrder: 1,
	})
	if err != nil {
		fail("create print service category", err)
	}
	tier2Qty, tier3Qty := 50, 200
	tier2Price := decimal.NewFromFloat(5.75)
	tier3Price := decimal.NewFromFloat(4.95)
	banner, err := models.CreatePrintServiceItem(ctx, &models.NewPrintServiceItem{
		CategoryId:         signage.ID,
		Name:               "13oz Vinyl Banner",
		Description:        "Full color, hemmed and grommeted",
		UnitType:           models.PrintUnitTypeSqFt,
		BasePrice:          decimal.NewFromFloat(6.5),
		PaperType:          models.PaperTypeVinyl,
		FinishType:         models.FinishTypeMatte,
		MinQuantity:        1,
		SetupFee:           decimal.NewFromFloat(25),
		Tier1Qty:           1,
		Tier1Price:         decimal.NewFromFloat(6.5),
		Tier2Qty:           &tier2Qty,
		Tier2Price:         &tier2Price,
		Tier3Qty:           &tier3Qty,
		Tier3Price:         &tier3Price,
		ProductionTimeDays: 2,
	})
	if err != nil {
		fail("create print service item", err)
	}

	// tickets in different SLA states
	urgent, err := models.CreateTicket(ctx, &models.NewTicket{
		Title:         "Server room AC failure",
		Description:   "Temperature alarm firing since 6am, servers throttling.",
		CustomerName:  "Harbor Dental Group",
		CustomerEmail: "frontdesk@harbordental.example.com",
		CustomerPhone: "555-0142",
		Category:      models.TicketCategoryHardware,
		Priority:      models.PriorityUrgent,
		AssignedToId:  techUser.ID,
	})
	if err != nil {
		fail("create urgent ticket", err)
	}
	if _, err := models.UpdateTicketStatus(ctx, urgent.ID, models.TicketStatusInProgress); err != nil {
		fail("move urgent ticket", err)
	}
	if _, err := models.CreateTicketNote(ctx, &models.NewTicketNote{
		TicketId: urgent.ID,
		Note:     "Technician dispatched, portable cooling on the way.",
	}); err != nil {
		fail("add ticket reply", err)
	}

	if _, err := models.CreateTicket(ctx, &models.NewTicket{
		Title:         "Email migration questions",
		Description:   "Need help moving three mailboxes to the new tenant.",
		CustomerName:  "Lena Ortiz",
		CustomerEmail: "lena@ortizrealty.example.com",
		Category:      models.TicketCategorySoftware,
		Priority:      models.PriorityMedium,
	}); err != nil {
		fail("create medium ticket", err)
	}

	// bid sheet taken through acceptance
	validUntil := time.Now().AddDate(0, 0, 30)
	bid, err := models.CreateBidSheet(ctx, &models.NewBidSheet{
		Title:              "Harbor Dental network buildout",
		CustomerId:         bidCustomer.ID,
		ProjectDescription: "Twelve new drops and two access points for the suite expansion.",
		ProjectAddress:     "410 Bayview Ave, Suite 2",
		ValidUntil:         &validUntil,
		DiscountPercentage: decimal.NewFromInt(5),
		TaxPercentage:      decimal.NewFromFloat(8.25),
		Items: []models.NewBidItem{
			// bid lines carry the price the customer was quoted
			{ServiceItemId: cat6.ID, Quantity: decimal.NewFromInt(12), UnitPrice: decimal.NewFromFloat(185), SortOrder: 1},
			{ServiceItemId: wap.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(240), SortOrder: 2},
		},
	})
	if err != nil {
		fail("create bid sheet", err)
	}
	if _, err := models.UpdateBidSheetStatus(ctx, bid.ID, models.BidSheetStatusSent); err != nil {
		fail("send bid sheet", err)
	}
	if _, err := models.UpdateBidSheetStatus(ctx, bid.ID, models.BidSheetStatusAccepted); err != nil {
		fail("accept bid sheet", err)
	}

	// approved print estimate
	estimate, err := models.CreatePrintEstimate(ctx, &models.NewPrintEstimate{
		Title:         "Ortiz Realty storefront graphics",
		CustomerId:    printCustomer.ID,
		Description:   "Window banner and hanging sign refresh.",
		TaxPercentage: decimal.NewFromFloat(8.25),
		PaymentTerms:  models.PaymentTermsNet30,
		Items: []models.NewPrintEstimateItem{
			{
				ServiceItemId: banner.ID,
				Description:   "Storefront banner 4x15",
				Dimensions:    "48in x 180in",
				Quantity:      decimal.NewFromInt(60),
				SortOrder:     1,
			},
			{
				Description:     "Design refresh",
				Quantity:        decimal.NewFromInt(1),
				UnitType:        string(models.PrintUnitTypeHour),
				UnitPrice:       decimal.NewFromFloat(85),
				RequiresDesign:  utils.NewTrue(),
				DesignTimeHours: decimal.NewFromFloat(3),
				SortOrder:       2,
			},
		},
	})
	if err != nil {
		fail("create print estimate", err)
	}
	if _, err := models.UpdatePrintEstimateStatus(ctx, estimate.ID, models.PrintEstimateStatusSent); err != nil {
		fail("send print estimate", err)
	}
	if _, err := models.UpdatePrintEstimateStatus(ctx, estimate.ID, models.PrintEstimateStatusApproved); err != nil {
		fail("approve print estimate", err)
	}

	// kanban cards for both boards
	slaHours := 72
	techCard, err := models.CreateProjectCard(ctx, &models.NewProjectCard{
		Title:          "Harbor Dental network buildout",
		Description:    "Accepted bid BS " + bid.BidNumber,
		Department:     models.DepartmentTechnology,
		Priority:       models.PriorityHigh,
		AssignedToId:   techUser.ID,
		BidSheetId:     &bid.ID,
		TechCustomerId: &bidCustomer.ID,
		EstimatedHours: decimal.NewFromInt(16),
		SLAHours:       &slaHours,
	})
	if err != nil {
		fail("create tech card", err)
	}
	if _, err := models.MoveProjectCard(ctx, techCard.ID, models.CardStatusTechInProgress, 0); err != nil {
		fail("move tech card", err)
	}
	timeSpent := decimal.NewFromFloat(2.5)
	if _, err := models.CreateCardComment(ctx, &models.NewCardComment{
		CardId:      techCard.ID,
		CommentType: models.CommentTypeTimeLog,
		Content:     "Pulled first eight drops, patch panel half terminated.",
		TimeSpent:   &timeSpent,
		Billable:    utils.NewTrue(),
	}); err != nil {
		fail("log card time", err)
	}

	printCard, err := models.CreateProjectCard(ctx, &models.NewProjectCard{
		Title:           "Ortiz Realty storefront graphics",
		Department:      models.DepartmentPrintDesign,
		Priority:        models.PriorityMedium,
		AssignedToId:    printUser.ID,
		PrintEstimateId: &estimate.ID,
		PrintCustomerId: &printCustomer.ID,
	})
	if err != nil {
		fail("create print card", err)
	}
	if _, err := models.MoveProjectCard(ctx, printCard.ID, models.CardStatusPrintDesignPhase, 0); err != nil {
		fail("move print card", err)
	}

	// shop floor
	vehicle, err := models.CreateVehicle(ctx, &models.NewVehicle{
		LicensePlate: "BLT-204",
		Make:         "Ford",
		Model:        "Transit 250",
		Year:         2023,
		Color:        "White",
		VehicleType:  models.VehicleTypeVan,
		Department:   models.VehicleDepartmentShared,
	})
	if err != nil {
		fail("create vehicle", err)
	}

	tomorrow9 := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(9 * time.Hour)
	if _, err := models.CreateVehicleDropOff(ctx, &models.NewVehicleDropOff{
		VehicleId:            vehicle.ID,
		ProjectCardId:        techCard.ID,
		ScheduledDropOff:     tomorrow9,
		ExpectedCompletion:   tomorrow9.AddDate(0, 0, 2),
		TechnicianAssignedId: &techUser.ID,
		WorkDescription:      "Load rack gear and test bench the access points before install.",
	}); err != nil {
		fail("create vehicle drop-off", err)
	}

	install3 := time.Now().AddDate(0, 0, 3).Truncate(24 * time.Hour).Add(10 * time.Hour)
	if _, err := models.CreateInstallationSchedule(ctx, &models.NewInstallationSchedule{
		ProjectCardId:            printCard.ID,
		InstallType:              models.InstallTypeOnsite,
		ScheduledDate:            install3,
		EstimatedDurationMinutes: 180,
		InstallAddress:           "88 Main St, Rockport TX",
		PrimaryContact:           "Lena Ortiz",
		ContactPhone:             "555-0177",
		TechnicianTeamIds:        []int{techUser.ID, printUser.ID},
	}); err != nil {
		fail("create installation booking", err)
	}

	fmt.Println("sample data seeded:")
	fmt.Printf("  users: %s, %s\n", techUser.Username, printUser.Username)
	fmt.Printf("  bid sheet %s (accepted), print estimate %s (approved)\n", bid.BidNumber, estimate.EstimateNumber)
	fmt.Printf("  cards: #%d technology, #%d print & design\n", techCard.ID, printCard.ID)
}

func ensureSLALevels(ctx context.Context, db *gorm.DB) {
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
			continue
		}
		if err != gorm.ErrRecordNotFound {
			fail("lookup SLA level", err)
		}
		if _, err := models.CreateSLALevel(ctx, &input); err != nil {
			fail("create SLA level", err)
		}
	}
}

func ensureUser(ctx context.Context, db *gorm.DB, username, name string, dept models.PrimaryDepartment) *models.User {
	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return &existing
	}
	if err != gorm.ErrRecordNotFound {
		fail("lookup user "+username, err)
	}

	canTech := dept == models.PrimaryDepartmentTechnology
	canPrint := dept == models.PrimaryDepartmentPrintDesign
	user, err := models.CreateUser(ctx, &models.NewUser{
		Username: username,
		Name:     name,
		Email:    username + "@blueline.example.com",
		Password: "Work$hop2026",
		IsActive: utils.NewTrue(),
		Role:     models.UserRoleStaff,
		Profile: &models.NewUserProfile{
			CanAccessTechnology:  &canTech,
			CanAccessPrintDesign: &canPrint,
			PrimaryDepartment:    dept,
		},
	})
	if err != nil {
		fail("create user "+username, err)
	}
	return user
}
