package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

type SLALevel struct {
	ID                  int       `gorm:"primary_key" json:"id"`
	Priority            Priority  `gorm:"type:enum('low', 'medium', 'high', 'urgent');unique;not null" json:"priority" binding:"required"`
	ResponseTimeHours   int       `gorm:"not null" json:"response_time_hours" binding:"required"`
	ResolutionTimeHours int       `gorm:"not null" json:"resolution_time_hours" binding:"required"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSLALevel struct {
	Priority            Priority `json:"priority" binding:"required"`
	ResponseTimeHours   int      `json:"response_time_hours" binding:"required"`
	ResolutionTimeHours int      `json:"resolution_time_hours" binding:"required"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewSLALevel) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[SLALevel](ctx, id); err != nil {
			return err
		}
	}
	if _, err := ParsePriority(string(input.Priority)); err != nil {
		return err
	}
	if input.ResponseTimeHours <= 0 {
		return errors.New("response time hours must be positive")
	}
	if input.ResolutionTimeHours <= 0 {
		return errors.New("resolution time hours must be positive")
	}
	if input.ResolutionTimeHours < input.ResponseTimeHours {
		return errors.New("resolution time hours must not be less than response time hours")
	}
	// one level per priority
	if err := utils.ValidateUnique[SLALevel](ctx, "priority", string(input.Priority), id); err != nil {
		return err
	}
	return nil
}

func CreateSLALevel(ctx context.Context, input *NewSLALevel) (*SLALevel, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	slaLevel := SLALevel{
		Priority:            input.Priority,
		ResponseTimeHours:   input.ResponseTimeHours,
		ResolutionTimeHours: input.ResolutionTimeHours,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&slaLevel).Error
	if err != nil {
		return nil, err
	}

	return &slaLevel, nil
}

// changing hours only affects tickets created afterwards
func UpdateSLALevel(ctx context.Context, id int, input *NewSLALevel) (*SLALevel, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	slaLevel, err := utils.FetchModel[SLALevel](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&slaLevel).Updates(map[string]interface{}{
		"Priority":            input.Priority,
		"ResponseTimeHours":   input.ResponseTimeHours,
		"ResolutionTimeHours": input.ResolutionTimeHours,
	}).Error
	if err != nil {
		return nil, err
	}
	return slaLevel, nil
}

func DeleteSLALevel(ctx context.Context, id int) (*SLALevel, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[SLALevel](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetSLALevel(ctx context.Context, id int) (*SLALevel, error) {

	return GetResource[SLALevel](ctx, id)
}

// nil when no level covers the priority
func getSLALevelByPriority(ctx context.Context, priority Priority) (*SLALevel, error) {

	db := config.GetDB()
	var result SLALevel

	err := db.WithContext(ctx).Model(&SLALevel{}).
		Where("priority = ?", priority).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &result, nil
}
