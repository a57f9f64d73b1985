package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Workbook layout, first row is the header:
// Category | Name | Description | Unit Type | Default Unit Price
type CatalogRow struct {
	CategoryName     string
	Name             string
	Description      string
	UnitType         string
	DefaultUnitPrice decimal.Decimal
}

// excelize trims trailing empty cells
func catalogCell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func populateCatalogRow(row []string) (CatalogRow, error) {
	price, err := utils.ParseDecimal(catalogCell(row, 4))
	if err != nil {
		return CatalogRow{}, fmt.Errorf("could not parse default unit price: %v", err)
	}

	catalogRow := CatalogRow{
		CategoryName:     catalogCell(row, 0),
		Name:             catalogCell(row, 1),
		Description:      catalogCell(row, 2),
		UnitType:         catalogCell(row, 3),
		DefaultUnitPrice: price,
	}

	return catalogRow, nil
}

func validateCatalogRows(rows [][]string) error {
	for idx, row := range rows[1:] {
		catalogRow, err := populateCatalogRow(row)
		if err != nil {
			return fmt.Errorf("error in row %d: %v", idx+2, err)
		}
		if len(catalogRow.CategoryName) == 0 {
			return fmt.Errorf("category name is empty in row %d", idx+2)
		}
		if len(catalogRow.Name) == 0 {
			return fmt.Errorf("service name is empty in row %d", idx+2)
		}
		if catalogRow.DefaultUnitPrice.IsNegative() {
			return fmt.Errorf("negative unit price in row %d", idx+2)
		}
	}
	return nil
}

func findOrCreateServiceCategory(ctx context.Context, tx *gorm.DB, name string) (ServiceCategory, error) {
	var category ServiceCategory
	err := tx.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return category, fmt.Errorf("error finding category: %v", err)
	}

	if err == gorm.ErrRecordNotFound {
		category = ServiceCategory{
			Name: name,
		}
		if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
			return category, fmt.Errorf("could not create category: %v", err)
		}
	}

	return category, nil
}

func ImportServiceItemsFromXlsx(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("no file provided")
	}
	if !strings.HasSuffix(path, ".xlsx") {
		return "", errors.New("invalid file type: only .xlsx files are allowed")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return "", fmt.Errorf("unable to read sheet: %v", err)
	}
	if len(rows) <= 1 {
		return "", errors.New("workbook has no data rows")
	}

	if err := validateCatalogRows(rows); err != nil {
		return "", err
	}

	db := config.GetDB()
	tx := db.Begin()

	duplicateRows := make([]string, 0)

	for idx, row := range rows[1:] {

		catalogRow, err := populateCatalogRow(row)
		if err != nil {
			tx.Rollback()
			return "", err
		}

		category, err := findOrCreateServiceCategory(ctx, tx, catalogRow.CategoryName)
		if err != nil {
			tx.Rollback()
			return "", err
		}

		// a name already present in the category is skipped, not updated
		var existing ServiceItem
		err = tx.WithContext(ctx).Where("category_id = ? AND name = ?", category.ID, catalogRow.Name).First(&existing).Error
		if err == nil {
			duplicateRows = append(duplicateRows, fmt.Sprintf("Row %d: Duplicate found for service with Name: %s", idx+2, catalogRow.Name))
			continue
		} else if err != gorm.ErrRecordNotFound {
			tx.Rollback()
			return "", fmt.Errorf("error checking for duplicates in row %d: %v", idx+2, err)
		}

		unitType := catalogRow.UnitType
		if unitType == "" {
			unitType = "each"
		}

		serviceItem := ServiceItem{
			CategoryId:       category.ID,
			Name:             catalogRow.Name,
			Description:      catalogRow.Description,
			DefaultUnitPrice: catalogRow.DefaultUnitPrice,
			UnitType:         unitType,
			IsActive:         utils.NewTrue(),
		}
		if err := tx.WithContext(ctx).Create(&serviceItem).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("could not create service item in row %d: %v", idx+2, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return "", err
	}

	if len(duplicateRows) > 0 {
		return fmt.Sprintf("imported successfully with duplicates: %v", duplicateRows), nil
	}

	return "imported successfully", nil
}
