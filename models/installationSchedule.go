package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

// InstallationSchedule is a booked install visit for a project card, with the
// dispatched technician team and the on-site contact details.
type InstallationSchedule struct {
	ID                       int           `gorm:"primary_key" json:"id"`
	ProjectCardId            int           `gorm:"index;not null" json:"project_card_id" binding:"required"`
	ProjectCard              *ProjectCard  `json:"project_card,omitempty"`
	InstallType              InstallType   `gorm:"type:enum('onsite', 'shop', 'mobile', 'delivery');not null" json:"install_type" binding:"required"`
	Status                   InstallStatus `gorm:"type:enum('scheduled', 'confirmed', 'team_dispatched', 'on_site', 'in_progress', 'completed', 'client_signoff', 'cancelled', 'rescheduled');default:scheduled" json:"status"`
	ScheduledDate            time.Time     `gorm:"not null" json:"scheduled_date" binding:"required"`
	EstimatedDurationMinutes int           `gorm:"not null;default:120" json:"estimated_duration_minutes"`
	ActualStart              *time.Time    `json:"actual_start"`
	ActualEnd                *time.Time    `json:"actual_end"`
	InstallAddress           string        `gorm:"type:text;not null" json:"install_address" binding:"required"`
	SpecialInstructions      string        `gorm:"type:text" json:"special_instructions"`
	EquipmentNeeded          string        `gorm:"type:text" json:"equipment_needed"`
	TechnicianTeam           []*User       `gorm:"many2many:installation_team_members" json:"technician_team"`
	PrimaryContact           string        `gorm:"size:100;not null" json:"primary_contact" binding:"required"`
	ContactPhone             string        `gorm:"size:20;not null" json:"contact_phone" binding:"required"`
	BackupContact            string        `gorm:"size:100" json:"backup_contact"`
	CompletionNotes          string        `gorm:"type:text" json:"completion_notes"`
	ClientSignature          string        `gorm:"size:100" json:"client_signature"`
	PhotosTaken              *bool         `gorm:"not null;default:false" json:"photos_taken"`
	CreatedById              int           `json:"created_by_id"`
	CreatedAt                time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInstallationSchedule struct {
	ProjectCardId            int         `json:"project_card_id" binding:"required"`
	InstallType              InstallType `json:"install_type" binding:"required"`
	ScheduledDate            time.Time   `json:"scheduled_date" binding:"required"`
	EstimatedDurationMinutes int         `json:"estimated_duration_minutes"`
	InstallAddress           string      `json:"install_address" binding:"required"`
	SpecialInstructions      string      `json:"special_instructions"`
	EquipmentNeeded          string      `json:"equipment_needed"`
	TechnicianTeamIds        []int       `json:"technician_team_ids"`
	PrimaryContact           string      `json:"primary_contact" binding:"required"`
	ContactPhone             string      `json:"contact_phone" binding:"required"`
	BackupContact            string      `json:"backup_contact"`
}

func (obj InstallationSchedule) GetId() int {
	return obj.ID
}

// ActualDuration is how long the install really took, nil until both stamps
// are in.
func (i *InstallationSchedule) ActualDuration() *time.Duration {
	if i.ActualStart == nil || i.ActualEnd == nil {
		return nil
	}
	duration := i.ActualEnd.Sub(*i.ActualStart)
	return &duration
}

// validate input for both create & update. (id = 0 for create)
func (input *NewInstallationSchedule) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[InstallationSchedule](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[ProjectCard](ctx, input.ProjectCardId); err != nil {
		return errors.New("project card not found")
	}
	if _, err := ParseInstallType(string(input.InstallType)); err != nil {
		return err
	}
	if input.EstimatedDurationMinutes < 0 {
		return errors.New("estimated duration must not be negative")
	}
	if err := utils.ValidatePhoneNumber(input.ContactPhone, utils.CountryCode); err != nil {
		return errors.New("invalid contact phone")
	}
	// only active users can be dispatched
	activeFilter := utils.Filter{Cond: "is_active = ?", Values: []interface{}{true}}
	if err := utils.MassValidateResourceIds(ctx, []utils.ValidationRule[int]{
		{Model: User{}, Ids: input.TechnicianTeamIds, Message: "technician not found or inactive", Filter: activeFilter},
	}); err != nil {
		return err
	}
	return nil
}

func CreateInstallationSchedule(ctx context.Context, input *NewInstallationSchedule) (*InstallationSchedule, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	duration := input.EstimatedDurationMinutes
	if duration == 0 {
		duration = 120
	}

	schedule := InstallationSchedule{
		ProjectCardId:            input.ProjectCardId,
		InstallType:              input.InstallType,
		Status:                   InstallStatusScheduled,
		ScheduledDate:            input.ScheduledDate,
		EstimatedDurationMinutes: duration,
		InstallAddress:           input.InstallAddress,
		SpecialInstructions:      input.SpecialInstructions,
		EquipmentNeeded:          input.EquipmentNeeded,
		PrimaryContact:           input.PrimaryContact,
		ContactPhone:             input.ContactPhone,
		BackupContact:            input.BackupContact,
		PhotosTaken:              utils.NewFalse(),
		CreatedById:              userId,
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Omit("TechnicianTeam").Create(&schedule).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err := UpsertJoinTable(tx.WithContext(ctx), "installation_team_members",
		"installation_schedule_id", "user_id", schedule.ID, input.TechnicianTeamIds)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[InstallationSchedule](ctx, schedule.ID, "TechnicianTeam")
}

func UpdateInstallationSchedule(ctx context.Context, id int, input *NewInstallationSchedule) (*InstallationSchedule, error) {

	beforeUpdate, err := utils.FetchModel[InstallationSchedule](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&beforeUpdate).Updates(map[string]interface{}{
		"ProjectCardId":            input.ProjectCardId,
		"InstallType":              input.InstallType,
		"ScheduledDate":            input.ScheduledDate,
		"EstimatedDurationMinutes": input.EstimatedDurationMinutes,
		"InstallAddress":           input.InstallAddress,
		"SpecialInstructions":      input.SpecialInstructions,
		"EquipmentNeeded":          input.EquipmentNeeded,
		"PrimaryContact":           input.PrimaryContact,
		"ContactPhone":             input.ContactPhone,
		"BackupContact":            input.BackupContact,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	err = UpsertJoinTable(tx.WithContext(ctx), "installation_team_members",
		"installation_schedule_id", "user_id", id, input.TechnicianTeamIds)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[InstallationSchedule](ctx, id, "ProjectCard", "TechnicianTeam")
}

// UpdateInstallationStatus moves the visit along. Arriving on site starts the
// clock, completing the work ends it. A sign-off on an unfinished install
// closes both stamps.
func UpdateInstallationStatus(ctx context.Context, id int, status InstallStatus) (*InstallationSchedule, error) {

	if _, err := ParseInstallStatus(string(status)); err != nil {
		return nil, err
	}

	beforeUpdate, err := utils.FetchModel[InstallationSchedule](ctx, id)
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
	case InstallStatusOnSite, InstallStatusInProgress:
		if beforeUpdate.ActualStart == nil {
			updates["ActualStart"] = now
		}
	case InstallStatusCompleted, InstallStatusClientSignoff:
		if beforeUpdate.ActualStart == nil {
			updates["ActualStart"] = now
		}
		if beforeUpdate.ActualEnd == nil {
			updates["ActualEnd"] = now
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

	return utils.FetchModel[InstallationSchedule](ctx, id)
}

// CompleteInstallation records the wrap-up details alongside the completed
// transition.
func CompleteInstallation(ctx context.Context, id int, completionNotes string, clientSignature string, photosTaken bool) (*InstallationSchedule, error) {

	beforeUpdate, err := utils.FetchModel[InstallationSchedule](ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"Status":          InstallStatusCompleted,
		"CompletionNotes": completionNotes,
		"ClientSignature": clientSignature,
		"PhotosTaken":     photosTaken,
	}
	if clientSignature != "" {
		updates["Status"] = InstallStatusClientSignoff
	}
	if beforeUpdate.ActualStart == nil {
		updates["ActualStart"] = now
	}
	if beforeUpdate.ActualEnd == nil {
		updates["ActualEnd"] = now
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

	return utils.FetchModel[InstallationSchedule](ctx, id)
}

func DeleteInstallationSchedule(ctx context.Context, id int) (*InstallationSchedule, error) {

	result, err := utils.FetchModel[InstallationSchedule](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	// the team roster goes with the schedule
	err = tx.WithContext(ctx).
		Exec("DELETE FROM installation_team_members WHERE installation_schedule_id = ?", id).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetInstallationSchedule(ctx context.Context, id int) (*InstallationSchedule, error) {

	return utils.FetchModel[InstallationSchedule](ctx, id, "ProjectCard", "TechnicianTeam")
}

func GetInstallationSchedules(ctx context.Context,
	projectCardId *int,
	status *InstallStatus,
	installType *InstallType) ([]*InstallationSchedule, error) {

	db := config.GetDB()
	var results []*InstallationSchedule

	dbCtx := db.WithContext(ctx).Model(&InstallationSchedule{}).
		Preload("ProjectCard").Preload("TechnicianTeam")
	if projectCardId != nil {
		dbCtx = dbCtx.Where("project_card_id = ?", *projectCardId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if installType != nil {
		dbCtx = dbCtx.Where("install_type = ?", *installType)
	}

	err := dbCtx.Order("scheduled_date").Limit(config.SearchLimit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetUpcomingInstallations lists what is booked from now on, soonest first.
func GetUpcomingInstallations(ctx context.Context) ([]*InstallationSchedule, error) {

	db := config.GetDB()
	var results []*InstallationSchedule

	err := db.WithContext(ctx).Model(&InstallationSchedule{}).
		Where("scheduled_date >= ?", time.Now()).
		Where("status NOT IN ?", []InstallStatus{InstallStatusCancelled}).
		Preload("ProjectCard").Preload("TechnicianTeam").
		Order("scheduled_date").Limit(config.SearchLimit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
