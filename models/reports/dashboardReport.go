package reports

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/models"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

type HelpdeskSummaryResponse struct {
	TotalTickets      int                    `json:"total_tickets"`
	OpenTickets       int                    `json:"open_tickets"`
	OverdueResponse   int                    `json:"overdue_response"`
	OverdueResolution int                    `json:"overdue_resolution"`
	StatusCounts      []*TicketStatusCount   `json:"status_counts"`
	PriorityCounts    []*TicketPriorityCount `json:"priority_counts"`
	RecentTickets     []*models.Ticket       `json:"recent_tickets"`
}

type TicketStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type BoardSummaryResponse struct {
	TotalCards       int                    `json:"total_cards"`
	ActiveCards      int                    `json:"active_cards"`
	BreachedOpen     int                    `json:"breached_open"`
	CompletedToday   int                    `json:"completed_today"`
	DepartmentCounts []*CardDepartmentCount `json:"department_counts"`
	RecentCards      []*models.ProjectCard  `json:"recent_cards"`
}

type CardDepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type ShopSummaryResponse struct {
	DropOffsToday         int                            `json:"drop_offs_today"`
	VehiclesInShop        int                            `json:"vehicles_in_shop"`
	InstallationsThisWeek int                            `json:"installations_this_week"`
	UpcomingInstallations []*models.InstallationSchedule `json:"upcoming_installations"`
}

type PrintRevenueResponse struct {
	TotalEstimates       int                     `json:"total_estimates"`
	ActiveEstimates      int                     `json:"active_estimates"`
	PendingApproval      int                     `json:"pending_approval"`
	RevenueThisMonth     decimal.Decimal         `json:"revenue_this_month"`
	RevenueLast30Days    decimal.Decimal         `json:"revenue_last_30_days"`
	RevenueThisYear      decimal.Decimal         `json:"revenue_this_year"`
	AverageEstimateValue decimal.Decimal         `json:"average_estimate_value"`
	MonthlyRevenue       []MonthlyRevenue        `json:"monthly_revenue"`
	TopCustomers         []*TopPrintCustomer     `json:"top_customers"`
	RecentEstimates      []*models.PrintEstimate `json:"recent_estimates"`
}

type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopPrintCustomer struct {
	CustomerName string          `json:"customer_name"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// GetHelpdeskSummary returns the ticket counters for the landing page:
// everything still open, both overdue buckets, and the breakdowns by status
// and by priority. The priority breakdown covers open tickets only.
func GetHelpdeskSummary(ctx context.Context) (*HelpdeskSummaryResponse, error) {
	db := config.GetDB()

	now := time.Now()

	settledStatuses := []string{
		string(models.TicketStatusResolved),
		string(models.TicketStatusClosed),
	}

	var response HelpdeskSummaryResponse

	countQuery := `
	SELECT
		COUNT(*) AS total_tickets,
		COALESCE(SUM(CASE WHEN status NOT IN ? THEN 1 ELSE 0 END), 0) AS open_tickets,
		COALESCE(SUM(CASE WHEN first_response_at IS NULL AND response_due < ? THEN 1 ELSE 0 END), 0) AS overdue_response,
		COALESCE(SUM(CASE WHEN resolved_at IS NULL AND resolution_due < ? AND status NOT IN ? THEN 1 ELSE 0 END), 0) AS overdue_resolution
	FROM
		tickets;`

	if err := db.WithContext(ctx).Raw(countQuery,
		settledStatuses, now, now, settledStatuses).
		Scan(&response).Error; err != nil {
		return nil, err
	}

	statusQuery := `
	SELECT
		status, COUNT(id) AS count
	FROM
		tickets
	GROUP BY status;`

	if err := db.WithContext(ctx).Raw(statusQuery).
		Scan(&response.StatusCounts).Error; err != nil {
		return nil, err
	}

	priorityQuery := `
	SELECT
		priority, COUNT(id) AS count
	FROM
		tickets
	WHERE
		status NOT IN ?
	GROUP BY priority;`

	if err := db.WithContext(ctx).Raw(priorityQuery, settledStatuses).
		Scan(&response.PriorityCounts).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Order("created_at DESC").Limit(5).
		Find(&response.RecentTickets).Error; err != nil {
		return nil, err
	}

	return &response, nil
}

// GetBoardSummary returns the Kanban counters. Active means the card is not
// in a terminal column, breached-open means the latch fired and the card is
// still being worked.
func GetBoardSummary(ctx context.Context) (*BoardSummaryResponse, error) {
	db := config.GetDB()

	currentDate := time.Now().Format("2006-01-02")

	terminalStatuses := []string{
		string(models.CardStatusTechCompleted),
		string(models.CardStatusPrintDelivered),
		string(models.CardStatusCancelled),
	}

	var response BoardSummaryResponse

	countQuery := `
	SELECT
		COUNT(*) AS total_cards,
		COALESCE(SUM(CASE WHEN status NOT IN ? THEN 1 ELSE 0 END), 0) AS active_cards,
		COALESCE(SUM(CASE WHEN sla_breached = TRUE AND completed_at IS NULL THEN 1 ELSE 0 END), 0) AS breached_open,
		COALESCE(SUM(CASE WHEN DATE(completed_at) = ? THEN 1 ELSE 0 END), 0) AS completed_today
	FROM
		project_cards;`

	if err := db.WithContext(ctx).Raw(countQuery,
		terminalStatuses, currentDate).
		Scan(&response).Error; err != nil {
		return nil, err
	}

	departmentQuery := `
	SELECT
		department, COUNT(id) AS count
	FROM
		project_cards
	WHERE
		status NOT IN ?
	GROUP BY department;`

	if err := db.WithContext(ctx).Raw(departmentQuery, terminalStatuses).
		Scan(&response.DepartmentCounts).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Order("created_at DESC").Limit(5).
		Find(&response.RecentCards).Error; err != nil {
		return nil, err
	}

	return &response, nil
}

// GetShopSummary returns the day's shop floor picture: vehicles due in today,
// vehicles currently in the building, and installations booked over the next
// seven days.
func GetShopSummary(ctx context.Context) (*ShopSummaryResponse, error) {
	db := config.GetDB()

	now := time.Now()
	currentDate := now.Format("2006-01-02")
	weekEnd := now.AddDate(0, 0, 7)

	// arrived but not yet released
	inShopStatuses := []string{
		string(models.DropOffStatusDroppedOff),
		string(models.DropOffStatusInProgress),
		string(models.DropOffStatusAwaitingParts),
		string(models.DropOffStatusCompleted),
		string(models.DropOffStatusReadyPickup),
	}

	var response ShopSummaryResponse

	dropOffQuery := `
	SELECT
		COALESCE(SUM(CASE WHEN DATE(scheduled_drop_off) = ? AND status <> 'cancelled' THEN 1 ELSE 0 END), 0) AS drop_offs_today,
		COALESCE(SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END), 0) AS vehicles_in_shop
	FROM
		vehicle_drop_offs;`

	if err := db.WithContext(ctx).Raw(dropOffQuery,
		currentDate, inShopStatuses).
		Scan(&response).Error; err != nil {
		return nil, err
	}

	installQuery := `
	SELECT
		COUNT(*) AS installations_this_week
	FROM
		installation_schedules
	WHERE
		scheduled_date >= ?
		AND scheduled_date < ?
		AND status <> 'cancelled';`

	if err := db.WithContext(ctx).Raw(installQuery, now, weekEnd).
		Scan(&response.InstallationsThisWeek).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date < ? AND status <> ?",
			now, weekEnd, models.InstallStatusCancelled).
		Order("scheduled_date").Limit(5).
		Find(&response.UpcomingInstallations).Error; err != nil {
		return nil, err
	}

	return &response, nil
}

// GetPrintRevenueSummary returns the print department's money view. Revenue
// counts approved estimates only, the trend covers the last six months
// including the current one.
func GetPrintRevenueSummary(ctx context.Context) (*PrintRevenueResponse, error) {
	start := time.Now()
	defer logSlowReport(ctx, "print_revenue_summary", start, nil)

	if reportCacheEnabled() {
		key := "report:print_revenue_summary"
		var cached *PrintRevenueResponse
		if ok, err := cacheGet(key, &cached); err == nil && ok && cached != nil {
			return cached, nil
		}
		response, err := buildPrintRevenueSummary(ctx)
		if err != nil {
			return nil, err
		}
		_ = cacheSet(key, response, reportCacheTTL())
		return response, nil
	}

	return buildPrintRevenueSummary(ctx)
}

func buildPrintRevenueSummary(ctx context.Context) (*PrintRevenueResponse, error) {
	db := config.GetDB()

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	last30Start := now.AddDate(0, 0, -30)
	trendStart := monthStart.AddDate(0, -5, 0)

	activeStatuses := []string{
		string(models.PrintEstimateStatusDraft),
		string(models.PrintEstimateStatusSent),
		string(models.PrintEstimateStatusApproved),
	}

	response := &PrintRevenueResponse{
		MonthlyRevenue: []MonthlyRevenue{},
	}

	countQuery := `
	SELECT
		COUNT(*) AS total_estimates,
		COALESCE(SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END), 0) AS active_estimates,
		COALESCE(SUM(CASE WHEN status = 'sent' THEN 1 ELSE 0 END), 0) AS pending_approval,
		COALESCE(SUM(CASE WHEN status = 'approved' AND created_at >= ? THEN total_amount ELSE 0 END), 0) AS RevenueThisMonth,
		COALESCE(SUM(CASE WHEN status = 'approved' AND created_at >= ? THEN total_amount ELSE 0 END), 0) AS RevenueLast30Days,
		COALESCE(SUM(CASE WHEN status = 'approved' AND created_at >= ? THEN total_amount ELSE 0 END), 0) AS RevenueThisYear,
		COALESCE(AVG(CASE WHEN status = 'approved' THEN total_amount END), 0) AS AverageEstimateValue
	FROM
		print_estimates;`

	if err := db.WithContext(ctx).Raw(countQuery,
		activeStatuses, monthStart, last30Start, yearStart).
		Scan(response).Error; err != nil {
		return nil, err
	}

	trendQuery := `
	WITH RECURSIVE MonthList AS (
		SELECT ? AS month_date
		UNION ALL
		SELECT DATE_ADD(month_date, INTERVAL 1 MONTH)
		FROM MonthList
		WHERE DATE_ADD(month_date, INTERVAL 1 MONTH) <= ?
	),
	MonthlyAgg AS (
		SELECT
			DATE_FORMAT(created_at, '%Y-%m') AS month,
			SUM(total_amount) AS revenue
		FROM print_estimates
		WHERE
			status = 'approved'
			AND created_at >= ?
		GROUP BY DATE_FORMAT(created_at, '%Y-%m')
	)
	SELECT
		DATE_FORMAT(ml.month_date, '%Y-%m') AS month,
		COALESCE(ma.revenue, 0) AS revenue
	FROM
		MonthList ml
	LEFT JOIN
		MonthlyAgg ma ON DATE_FORMAT(ml.month_date, '%Y-%m') = ma.month
	ORDER BY
		ml.month_date;`

	trendStartDate := trendStart.Format("2006-01-02")
	monthStartDate := monthStart.Format("2006-01-02")

	rows, err := db.WithContext(ctx).Raw(trendQuery,
		trendStartDate, monthStartDate, trendStart).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var monthStr string
		var revenue decimal.Decimal

		if err := rows.Scan(&monthStr, &revenue); err != nil {
			return nil, err
		}

		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return nil, err
		}

		response.MonthlyRevenue = append(response.MonthlyRevenue, MonthlyRevenue{
			Month:   month.Format("2006-Jan"),
			Revenue: revenue,
		})
	}

	topCustomerQuery := `
	SELECT
		pc.name AS customer_name,
		COALESCE(SUM(pe.total_amount), 0) AS revenue
	FROM
		print_estimates pe
	JOIN
		print_customers pc ON pc.id = pe.customer_id
	WHERE
		pe.status = 'approved'
	GROUP BY pc.id, pc.name
	ORDER BY revenue DESC
	LIMIT 5;`

	if err := db.WithContext(ctx).Raw(topCustomerQuery).
		Scan(&response.TopCustomers).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Order("created_at DESC").Limit(10).
		Find(&response.RecentEstimates).Error; err != nil {
		return nil, err
	}

	return response, nil
}
