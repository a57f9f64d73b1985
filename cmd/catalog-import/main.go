// catalog-import loads bid sheet service items from an .xlsx workbook into
// the catalog. Expected columns on Sheet1, first row is the header:
//
//   Category | Name | Description | Unit Type | Default Unit Price
//
// Categories are created as needed. Items whose name already exists in the
// category are reported and skipped, never overwritten.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... go run ./cmd/catalog-import -file catalog.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

func main() {
	file := flag.String("file", "", "Path to the .xlsx workbook to import")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: catalog-import -file <catalog.xlsx>")
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	// Catalog rows are hooked, the history entries need an actor.
	ctx = utils.SetUserIdInContext(ctx, 0)
	ctx = utils.SetUserNameInContext(ctx, "CatalogImport")

	message, err := models.ImportServiceItemsFromXlsx(ctx, *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-import: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(message)

	// Show the catalog as the pick lists now serve it.
	categories, err := models.ListAllServiceCategory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-import: list categories: %v\n", err)
		os.Exit(1)
	}
	items, err := models.ListAllServiceItem(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-import: list items: %v\n", err)
		os.Exit(1)
	}
	perCategory := make(map[int]int)
	for _, item := range items {
		perCategory[item.CategoryId]++
	}
	for _, category := range categories {
		fmt.Printf("  %s: %d items\n", category.Name, perCategory[category.ID])
	}
}
