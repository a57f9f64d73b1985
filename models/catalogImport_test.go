package models

import (
	"strings"
	"testing"
)

func TestValidateCatalogRows(t *testing.T) {
	header := []string{"Category", "Name", "Description", "Unit Type", "Default Unit Price"}

	cases := []struct {
		name    string
		rows    [][]string
		wantErr string
	}{
		{
			name: "valid rows pass",
			rows: [][]string{
				header,
				{"Networking", "Cat6 Drop Installation", "Wall plate and test", "each", "185.00"},
				{"Networking", "Access Point Setup", "", "each", "240"},
			},
		},
		{
			name: "missing category",
			rows: [][]string{
				header,
				{"", "Cat6 Drop Installation", "", "each", "185.00"},
			},
			wantErr: "category name is empty in row 2",
		},
		{
			name: "missing service name",
			rows: [][]string{
				header,
				{"Networking", "Cat6 Drop Installation", "", "each", "185.00"},
				{"Networking", "", "", "each", "95"},
			},
			wantErr: "service name is empty in row 3",
		},
		{
			name: "negative price",
			rows: [][]string{
				header,
				{"Networking", "Cat6 Drop Installation", "", "each", "-5"},
			},
			wantErr: "negative unit price in row 2",
		},
		{
			name: "unparseable price",
			rows: [][]string{
				header,
				{"Networking", "Cat6 Drop Installation", "", "each", "one hundred"},
			},
			wantErr: "error in row 2",
		},
	}
	for _, tc := range cases {
		err := validateCatalogRows(tc.rows)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestPopulateCatalogRow(t *testing.T) {
	row, err := populateCatalogRow([]string{" Networking ", " Cat6 Drop ", "", "", "10.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.CategoryName != "Networking" || row.Name != "Cat6 Drop" {
		t.Fatalf("cells should be trimmed, got %q / %q", row.CategoryName, row.Name)
	}
	if row.UnitType != "" {
		t.Fatalf("empty unit type should stay empty, got %q", row.UnitType)
	}
	if row.DefaultUnitPrice.StringFixed(2) != "10.50" {
		t.Fatalf("price expected 10.50, got %s", row.DefaultUnitPrice.StringFixed(2))
	}

	// excelize drops trailing empty cells, a short row has no price to parse
	if _, err := populateCatalogRow([]string{"Networking", "Cat6 Drop"}); err == nil {
		t.Fatal("short row without a price cell should be rejected")
	}
}
