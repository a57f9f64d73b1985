// report-export runs one of the row-based reports and writes it to an .xlsx
// workbook.
//
// Reports:
//   bids-by-customer       -from/-to date window, optional -customer-id
//   vehicle-usage          optional -status filter
//   installation-schedule  optional -days horizon
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... go run ./cmd/report-export -report bids-by-customer -from 2026-01-01 -to 2026-12-31 -out bids.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models/reports"
)

func main() {
	report := flag.String("report", "", "Report to run: bids-by-customer, vehicle-usage, installation-schedule")
	out := flag.String("out", "report.xlsx", "Output .xlsx path")
	from := flag.String("from", "", "Start date (YYYY-MM-DD), bids-by-customer only")
	to := flag.String("to", "", "End date (YYYY-MM-DD), bids-by-customer only")
	customerID := flag.Int("customer-id", 0, "Optional customer filter, bids-by-customer only")
	status := flag.String("status", "", "Optional vehicle status filter, vehicle-usage only")
	days := flag.Int("days", 0, "Optional horizon in days, installation-schedule only")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	var (
		rows     []reports.ExcelExporter
		headings []string
	)

	switch *report {
	case "bids-by-customer":
		fromDate, toDate, err := parseWindow(*from, *to)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		var customer *int
		if *customerID > 0 {
			customer = customerID
		}
		records, err := reports.GetBidsByCustomerReport(ctx, customer, fromDate, toDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "report-export: %v\n", err)
			os.Exit(1)
		}
		headings = []string{"Customer Id", "Customer Name", "Bids", "Accepted", "Sub Total", "Tax", "Total"}
		for _, r := range records {
			rows = append(rows, r)
		}

	case "vehicle-usage":
		var statusFilter *string
		if *status != "" {
			statusFilter = status
		}
		records, err := reports.GetVehicleUsageReport(ctx, statusFilter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "report-export: %v\n", err)
			os.Exit(1)
		}
		headings = []string{"Vehicle Id", "License Plate", "Make", "Model", "Status", "Drop Offs", "Last Visit"}
		for _, r := range records {
			rows = append(rows, r)
		}

	case "installation-schedule":
		var horizon *int
		if *days > 0 {
			horizon = days
		}
		records, err := reports.GetInstallationScheduleReport(ctx, horizon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "report-export: %v\n", err)
			os.Exit(1)
		}
		headings = []string{"Schedule Id", "Install Type", "Status", "Scheduled Date", "Duration (min)", "Address", "Primary Contact", "Card", "Team Size"}
		for _, r := range records {
			rows = append(rows, r)
		}

	default:
		fmt.Fprintln(os.Stderr, "usage: report-export -report <bids-by-customer|vehicle-usage|installation-schedule> [-out report.xlsx]")
		os.Exit(2)
	}

	if err := reports.ExportXlsx(rows, *out, headings...); err != nil {
		fmt.Fprintf(os.Stderr, "report-export: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("bids-by-customer needs -from and -to (YYYY-MM-DD)")
	}
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date: %v", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date: %v", err)
	}
	// make the window inclusive of the end date
	return fromDate, toDate.AddDate(0, 0, 1).Add(-time.Second), nil
}
