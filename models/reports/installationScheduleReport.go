package reports

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type InstallationScheduleResponse struct {
	ScheduleID               int       `json:"ScheduleId"`
	InstallType              string    `json:"InstallType"`
	Status                   string    `json:"Status"`
	ScheduledDate            time.Time `json:"ScheduledDate"`
	EstimatedDurationMinutes int       `json:"EstimatedDurationMinutes"`
	InstallAddress           string    `json:"InstallAddress"`
	PrimaryContact           string    `json:"PrimaryContact"`
	CardTitle                *string   `json:"CardTitle,omitempty"`
	TeamSize                 int       `json:"TeamSize"`
}

// GetInstallationScheduleReport lists what is booked from now on, soonest
// first. A days window narrows the horizon, otherwise the next 20 jobs come
// back.
func GetInstallationScheduleReport(ctx context.Context, days *int) ([]*InstallationScheduleResponse, error) {

	sqlT := `
SELECT
    ins.id AS schedule_id,
    ins.install_type,
    ins.status,
    ins.scheduled_date,
    ins.estimated_duration_minutes,
    ins.install_address,
    ins.primary_contact,
    project_cards.title AS card_title,
    COUNT(installation_team_members.user_id) AS team_size
FROM
    installation_schedules AS ins
        LEFT JOIN
    project_cards ON project_cards.id = ins.project_card_id
        LEFT JOIN
    installation_team_members ON installation_team_members.installation_schedule_id = ins.id
WHERE
    ins.scheduled_date >= @fromDate
        AND ins.status <> 'cancelled'
	{{- if .days }} AND ins.scheduled_date < @toDate {{- end }}
GROUP BY ins.id , ins.install_type , ins.status , ins.scheduled_date , ins.estimated_duration_minutes , ins.install_address , ins.primary_contact , project_cards.title
ORDER BY ins.scheduled_date
LIMIT 20;
`

	// generating sql from template
	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"days": utils.DereferencePtr(days),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var toDate time.Time
	if days != nil && *days > 0 {
		toDate = now.AddDate(0, 0, *days)
	}

	var records []*InstallationScheduleResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": now,
		"toDate":   toDate,
	}).Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r InstallationScheduleResponse) GetCellValues() []interface{} {
	return []interface{}{
		r.ScheduledDate.Format("2006-01-02 15:04"),
		r.InstallType,
		r.Status,
		utils.DereferencePtr(r.CardTitle, ""),
		r.InstallAddress,
		r.PrimaryContact,
		r.EstimatedDurationMinutes,
		r.TeamSize,
	}
}
