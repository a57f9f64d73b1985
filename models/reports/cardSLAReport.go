package reports

import (
	"context"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"github.com/shopspring/decimal"
)

type CardSLAResponse struct {
	TotalCards     int                   `json:"total_cards"`
	BreachedCards  int                   `json:"breached_cards"`
	ActiveCards    int                   `json:"active_cards"`
	BreachRate     decimal.Decimal       `json:"breach_rate"`
	RecentBreaches []*models.ProjectCard `json:"recent_breaches"`
}

// GetCardSLAReport summarizes the breach latch across the board. The breach
// count includes completed cards, the latch never resets.
func GetCardSLAReport(ctx context.Context) (*CardSLAResponse, error) {

	sql := `
SELECT
    COUNT(*) AS total_cards,
    COALESCE(SUM(CASE
        WHEN sla_breached = TRUE THEN 1
        ELSE 0
    END), 0) AS breached_cards,
    COALESCE(SUM(CASE
        WHEN completed_at IS NULL THEN 1
        ELSE 0
    END), 0) AS active_cards
FROM
    project_cards;
`

	db := config.GetDB()
	var result CardSLAResponse
	if err := db.WithContext(ctx).Raw(sql).Scan(&result).Error; err != nil {
		return nil, err
	}

	result.BreachRate = decimal.Zero
	if result.TotalCards > 0 {
		result.BreachRate = decimal.NewFromInt(int64(result.BreachedCards)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(int64(result.TotalCards)), 1)
	}

	if err := db.WithContext(ctx).Model(&models.ProjectCard{}).
		Where("sla_breached = ?", true).
		Order("created_at DESC").
		Limit(10).
		Find(&result.RecentBreaches).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
