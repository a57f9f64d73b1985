package reports

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

type BidsByCustomerResponse struct {
	CustomerID    int             `json:"CustomerId"`
	CustomerName  *string         `json:"CustomerName,omitempty"`
	BidCount      int             `json:"BidCount"`
	AcceptedCount int             `json:"AcceptedCount"`
	TotalSubTotal decimal.Decimal `json:"TotalSubTotal"`
	TotalTax      decimal.Decimal `json:"TotalTax"`
	TotalAmount   decimal.Decimal `json:"TotalAmount"`
}

// GetBidsByCustomerReport sums bid sheets per customer over a date range.
// Draft bids are excluded, a bid only counts once it has gone out the door.
func GetBidsByCustomerReport(ctx context.Context, customerId *int, fromDate time.Time, toDate time.Time) ([]*BidsByCustomerResponse, error) {

	sqlT := `
SELECT
    bsv.customer_id,
    bsv.bid_count,
    bsv.accepted_count,
    bsv.total_sub_total,
    bsv.total_tax,
    bsv.total_amount,
    customers.name AS customer_name
FROM
    (SELECT
        customer_id,
            COUNT(bid_sheets.id) AS bid_count,
            COALESCE(SUM(CASE
                WHEN status = 'accepted' THEN 1
                ELSE 0
            END), 0) AS accepted_count,
            COALESCE(SUM(sub_total), 0) AS total_sub_total,
            COALESCE(SUM(tax_amount), 0) AS total_tax,
            COALESCE(SUM(total_amount), 0) AS total_amount
    FROM
        bid_sheets
    WHERE
        created_at BETWEEN @fromDate AND @toDate
            AND status <> 'draft'
		{{- if .customerId }} AND customer_id = @customerId {{- end }}
    GROUP BY customer_id) AS bsv
        LEFT JOIN
    customers ON customers.id = bsv.customer_id
ORDER BY bsv.total_amount DESC;
`

	if customerId != nil && *customerId != 0 {
		if err := utils.ValidateResourceId[models.Customer](ctx, *customerId); err != nil {
			return nil, err
		}
	}

	// generating sql from template
	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"customerId": utils.DereferencePtr(customerId),
	})
	if err != nil {
		return nil, err
	}

	var records []*BidsByCustomerResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate":   fromDate,
		"toDate":     toDate,
		"customerId": customerId,
	}).Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r BidsByCustomerResponse) GetCellValues() []interface{} {
	return []interface{}{
		utils.DereferencePtr(r.CustomerName, ""),
		r.BidCount,
		r.AcceptedCount,
		r.TotalSubTotal,
		r.TotalTax,
		r.TotalAmount,
	}
}
