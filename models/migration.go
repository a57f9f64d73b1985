package models

import (
	"log"

	"bitbucket.org/bluelinetech/blt_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&CompanyInfo{}, &User{}, &UserProfile{},
		&SLALevel{}, &CustomerInfo{}, &Ticket{}, &TicketNote{},
		&Customer{},
		&ServiceCategory{}, &ServiceItem{}, &BidSheet{}, &BidItem{}, &BidEmailLog{},
		&PrintCustomer{}, &PrintServiceCategory{}, &PrintServiceItem{},
		&PrintEstimate{}, &PrintEstimateItem{}, &ProductSheet{},
		&ProjectCard{}, &CardComment{},
		&Vehicle{}, &VehicleDropOff{}, &InstallationSchedule{},
		&History{}, &Image{}, &Document{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
