package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

// VehicleDropOff is one service visit: a vehicle left at the shop against a
// project card, tracked from the scheduled drop-off through pickup.
type VehicleDropOff struct {
	ID                   int           `gorm:"primary_key" json:"id"`
	VehicleId            int           `gorm:"index;not null" json:"vehicle_id" binding:"required"`
	Vehicle              *Vehicle      `json:"vehicle,omitempty"`
	ProjectCardId        int           `gorm:"index;not null" json:"project_card_id" binding:"required"`
	ProjectCard          *ProjectCard  `json:"project_card,omitempty"`
	ScheduledDropOff     time.Time     `gorm:"not null" json:"scheduled_drop_off" binding:"required"`
	ActualDropOff        *time.Time    `json:"actual_drop_off"`
	ExpectedCompletion   time.Time     `gorm:"not null" json:"expected_completion" binding:"required"`
	ActualCompletion     *time.Time    `json:"actual_completion"`
	DropOffLocation      string        `gorm:"size:200;default:'Main Shop'" json:"drop_off_location"`
	BayNumber            string        `gorm:"size:10" json:"bay_number"`
	TechnicianAssignedId *int          `gorm:"index" json:"technician_assigned_id"`
	Status               DropOffStatus `gorm:"type:enum('scheduled', 'dropped_off', 'in_progress', 'awaiting_parts', 'completed', 'ready_pickup', 'picked_up', 'cancelled');default:scheduled" json:"status"`
	WorkDescription      string        `gorm:"type:text;not null" json:"work_description" binding:"required"`
	CustomerNotes        string        `gorm:"type:text" json:"customer_notes"`
	InternalNotes        string        `gorm:"type:text" json:"internal_notes"`
	DropOffContact       string        `gorm:"size:100" json:"drop_off_contact"`
	PickupContact        string        `gorm:"size:100" json:"pickup_contact"`
	CreatedById          int           `json:"created_by_id"`
	CreatedAt            time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVehicleDropOff struct {
	VehicleId            int           `json:"vehicle_id" binding:"required"`
	ProjectCardId        int           `json:"project_card_id" binding:"required"`
	ScheduledDropOff     time.Time     `json:"scheduled_drop_off" binding:"required"`
	ExpectedCompletion   time.Time     `json:"expected_completion" binding:"required"`
	DropOffLocation      string        `json:"drop_off_location"`
	BayNumber            string        `json:"bay_number"`
	TechnicianAssignedId *int          `json:"technician_assigned_id"`
	Status               DropOffStatus `json:"status"`
	WorkDescription      string        `json:"work_description" binding:"required"`
	CustomerNotes        string        `json:"customer_notes"`
	InternalNotes        string        `json:"internal_notes"`
	DropOffContact       string        `json:"drop_off_contact"`
	PickupContact        string        `json:"pickup_contact"`
}

func (obj VehicleDropOff) GetId() int {
	return obj.ID
}

// validate input for both create & update. (id = 0 for create)
func (input *NewVehicleDropOff) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[VehicleDropOff](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Vehicle](ctx, input.VehicleId); err != nil {
		return errors.New("vehicle not found")
	}
	if err := utils.ValidateResourceId[ProjectCard](ctx, input.ProjectCardId); err != nil {
		return errors.New("project card not found")
	}
	if input.TechnicianAssignedId != nil {
		if err := utils.ValidateResourceId[User](ctx, *input.TechnicianAssignedId); err != nil {
			return errors.New("technician not found")
		}
	}
	if input.Status != "" {
		if _, err := ParseDropOffStatus(string(input.Status)); err != nil {
			return err
		}
	}
	if input.ExpectedCompletion.Before(input.ScheduledDropOff) {
		return errors.New("expected completion must not be before the scheduled drop-off")
	}
	return nil
}

func CreateVehicleDropOff(ctx context.Context, input *NewVehicleDropOff) (*VehicleDropOff, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	status := input.Status
	if status == "" {
		status = DropOffStatusScheduled
	}
	location := input.DropOffLocation
	if location == "" {
		location = "Main Shop"
	}

	dropOff := VehicleDropOff{
		VehicleId:            input.VehicleId,
		ProjectCardId:        input.ProjectCardId,
		ScheduledDropOff:     input.ScheduledDropOff,
		ExpectedCompletion:   input.ExpectedCompletion,
		DropOffLocation:      location,
		BayNumber:            input.BayNumber,
		TechnicianAssignedId: input.TechnicianAssignedId,
		Status:               status,
		WorkDescription:      input.WorkDescription,
		CustomerNotes:        input.CustomerNotes,
		InternalNotes:        input.InternalNotes,
		DropOffContact:       input.DropOffContact,
		PickupContact:        input.PickupContact,
		CreatedById:          userId,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&dropOff).Error; err != nil {
		return nil, err
	}

	return &dropOff, nil
}

// UpdateVehicleDropOff edits the visit details. The actual drop-off and
// completion times are stamped by status transitions, not set directly.
func UpdateVehicleDropOff(ctx context.Context, id int, input *NewVehicleDropOff) (*VehicleDropOff, error) {

	beforeUpdate, err := utils.FetchModel[VehicleDropOff](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&beforeUpdate).Updates(map[string]interface{}{
		"VehicleId":            input.VehicleId,
		"ProjectCardId":        input.ProjectCardId,
		"ScheduledDropOff":     input.ScheduledDropOff,
		"ExpectedCompletion":   input.ExpectedCompletion,
		"DropOffLocation":      input.DropOffLocation,
		"BayNumber":            input.BayNumber,
		"TechnicianAssignedId": input.TechnicianAssignedId,
		"WorkDescription":      input.WorkDescription,
		"CustomerNotes":        input.CustomerNotes,
		"InternalNotes":        input.InternalNotes,
		"DropOffContact":       input.DropOffContact,
		"PickupContact":        input.PickupContact,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[VehicleDropOff](ctx, id, "Vehicle", "ProjectCard")
}

// UpdateVehicleDropOffStatus moves the visit along. Arriving stamps the
// actual drop-off, finishing the work stamps the actual completion.
func UpdateVehicleDropOffStatus(ctx context.Context, id int, status DropOffStatus) (*VehicleDropOff, error) {

	if _, err := ParseDropOffStatus(string(status)); err != nil {
		return nil, err
	}

	beforeUpdate, err := utils.FetchModel[VehicleDropOff](ctx, id)
	if err != nil {
		return nil, err
	}
	if beforeUpdate.Status == status {
		return beforeUpdate, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"Status": status,
	}
	switch status {
	case DropOffStatusDroppedOff:
		if beforeUpdate.ActualDropOff == nil {
			updates["ActualDropOff"] = now
		}
	case DropOffStatusCompleted:
		if beforeUpdate.ActualCompletion == nil {
			updates["ActualCompletion"] = now
		}
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[VehicleDropOff](ctx, id)
}

func DeleteVehicleDropOff(ctx context.Context, id int) (*VehicleDropOff, error) {

	result, err := utils.FetchModel[VehicleDropOff](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetVehicleDropOff(ctx context.Context, id int) (*VehicleDropOff, error) {

	return utils.FetchModel[VehicleDropOff](ctx, id, "Vehicle", "ProjectCard")
}

func GetVehicleDropOffs(ctx context.Context,
	vehicleId *int,
	projectCardId *int,
	status *DropOffStatus) ([]*VehicleDropOff, error) {

	db := config.GetDB()
	var results []*VehicleDropOff

	dbCtx := db.WithContext(ctx).Model(&VehicleDropOff{}).
		Preload("Vehicle").Preload("ProjectCard")
	if vehicleId != nil {
		dbCtx = dbCtx.Where("vehicle_id = ?", *vehicleId)
	}
	if projectCardId != nil {
		dbCtx = dbCtx.Where("project_card_id = ?", *projectCardId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}

	err := dbCtx.Order("scheduled_drop_off DESC").Limit(config.SearchLimit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveVehicleDropOffs is the shop board: every visit scheduled or still
// in the building, oldest first.
func GetActiveVehicleDropOffs(ctx context.Context) ([]*VehicleDropOff, error) {

	db := config.GetDB()
	var results []*VehicleDropOff

	err := db.WithContext(ctx).Model(&VehicleDropOff{}).
		Where("status NOT IN ?", []DropOffStatus{DropOffStatusPickedUp, DropOffStatusCancelled}).
		Preload("Vehicle").Preload("ProjectCard").
		Order("scheduled_drop_off").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
