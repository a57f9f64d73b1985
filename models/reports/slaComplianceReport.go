package reports

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	"github.com/shopspring/decimal"
)

type TicketPriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

type SLAComplianceResponse struct {
	TotalTickets            int                    `json:"total_tickets"`
	RespondedTickets        int                    `json:"responded_tickets"`
	ResponseOnTime          int                    `json:"response_on_time"`
	ResponseSLAPercentage   decimal.Decimal        `json:"response_sla_percentage"`
	ResolvedTickets         int                    `json:"resolved_tickets"`
	ResolutionOnTime        int                    `json:"resolution_on_time"`
	ResolutionSLAPercentage decimal.Decimal        `json:"resolution_sla_percentage"`
	PriorityCounts          []*TicketPriorityCount `json:"priority_counts"`
	OverdueResponse         []*models.Ticket       `json:"overdue_response"`
	OverdueResolution       []*models.Ticket       `json:"overdue_resolution"`
}

type slaMilestoneCounts struct {
	TotalTickets     int
	RespondedTickets int
	ResponseOnTime   int
	ResolvedTickets  int
	ResolutionOnTime int
}

// GetSLAComplianceReport measures tickets against their SLA clocks. Met
// percentages are taken over tickets that reached the milestone, a ticket
// still waiting for its first response counts in neither bucket.
func GetSLAComplianceReport(ctx context.Context) (*SLAComplianceResponse, error) {
	start := time.Now()
	defer logSlowReport(ctx, "sla_compliance_report", start, nil)

	sql := `
SELECT
    COUNT(*) AS total_tickets,
    COUNT(first_response_at) AS responded_tickets,
    COALESCE(SUM(CASE
        WHEN first_response_at IS NOT NULL
            AND first_response_at <= response_due THEN 1
        ELSE 0
    END), 0) AS response_on_time,
    COUNT(resolved_at) AS resolved_tickets,
    COALESCE(SUM(CASE
        WHEN resolved_at IS NOT NULL
            AND resolved_at <= resolution_due THEN 1
        ELSE 0
    END), 0) AS resolution_on_time
FROM
    tickets;
`

	db := config.GetDB()
	var counts slaMilestoneCounts
	if err := db.WithContext(ctx).Raw(sql).Scan(&counts).Error; err != nil {
		return nil, err
	}

	result := SLAComplianceResponse{
		TotalTickets:            counts.TotalTickets,
		RespondedTickets:        counts.RespondedTickets,
		ResponseOnTime:          counts.ResponseOnTime,
		ResponseSLAPercentage:   decimal.Zero,
		ResolvedTickets:         counts.ResolvedTickets,
		ResolutionOnTime:        counts.ResolutionOnTime,
		ResolutionSLAPercentage: decimal.Zero,
	}

	oneHundred := decimal.NewFromInt(100)
	if counts.RespondedTickets > 0 {
		result.ResponseSLAPercentage = decimal.NewFromInt(int64(counts.ResponseOnTime)).
			Mul(oneHundred).
			DivRound(decimal.NewFromInt(int64(counts.RespondedTickets)), 1)
	}
	if counts.ResolvedTickets > 0 {
		result.ResolutionSLAPercentage = decimal.NewFromInt(int64(counts.ResolutionOnTime)).
			Mul(oneHundred).
			DivRound(decimal.NewFromInt(int64(counts.ResolvedTickets)), 1)
	}

	prioritySql := `
SELECT
    priority, COUNT(id) AS count
FROM
    tickets
WHERE
    status NOT IN ('resolved' , 'closed')
GROUP BY priority;
`
	if err := db.WithContext(ctx).Raw(prioritySql).Scan(&result.PriorityCounts).Error; err != nil {
		return nil, err
	}

	// currently overdue: unanswered past the response clock, unresolved past
	// the resolution clock while the ticket is still open
	now := time.Now()
	if err := db.WithContext(ctx).Model(&models.Ticket{}).
		Where("first_response_at IS NULL AND response_due < ?", now).
		Order("response_due").
		Find(&result.OverdueResponse).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&models.Ticket{}).
		Where("resolved_at IS NULL AND resolution_due < ?", now).
		Where("status NOT IN ?", []string{string(models.TicketStatusResolved), string(models.TicketStatusClosed)}).
		Order("resolution_due").
		Find(&result.OverdueResolution).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r TicketPriorityCount) GetCellValues() []interface{} {
	return []interface{}{
		r.Priority,
		r.Count,
	}
}
