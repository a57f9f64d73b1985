package reports

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type VehicleUsageResponse struct {
	VehicleID    int        `json:"VehicleId"`
	LicensePlate string     `json:"LicensePlate"`
	Make         string     `json:"Make"`
	Model        string     `json:"Model"`
	Status       string     `json:"Status"`
	DropOffCount int        `json:"DropOffCount"`
	LastVisit    *time.Time `json:"LastVisit,omitempty"`
}

// GetVehicleUsageReport counts shop visits per vehicle, busiest first.
// Vehicles that never came in still appear with a zero count.
func GetVehicleUsageReport(ctx context.Context, status *string) ([]*VehicleUsageResponse, error) {

	sqlT := `
SELECT
    vehicles.id AS vehicle_id,
    vehicles.license_plate,
    vehicles.make,
    vehicles.model,
    vehicles.status,
    COUNT(vehicle_drop_offs.id) AS drop_off_count,
    MAX(vehicle_drop_offs.scheduled_drop_off) AS last_visit
FROM
    vehicles
        LEFT JOIN
    vehicle_drop_offs ON vehicle_drop_offs.vehicle_id = vehicles.id
{{- if .status }}
WHERE
    vehicles.status = @status
{{- end }}
GROUP BY vehicles.id , vehicles.license_plate , vehicles.make , vehicles.model , vehicles.status
ORDER BY drop_off_count DESC , vehicles.license_plate;
`

	// generating sql from template
	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"status": utils.DereferencePtr(status),
	})
	if err != nil {
		return nil, err
	}

	var records []*VehicleUsageResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"status": status,
	}).Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r VehicleUsageResponse) GetCellValues() []interface{} {
	lastVisit := ""
	if r.LastVisit != nil {
		lastVisit = r.LastVisit.Format("2006-01-02")
	}
	return []interface{}{
		r.LicensePlate,
		r.Make,
		r.Model,
		r.Status,
		r.DropOffCount,
		lastVisit,
	}
}
