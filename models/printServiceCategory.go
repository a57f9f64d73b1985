package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type PrintServiceCategory struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPrintServiceCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPrintServiceCategory) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[PrintServiceCategory](ctx, id); err != nil {
			return err
		}
	}
	// name
	if err := utils.ValidateUnique[PrintServiceCategory](ctx, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreatePrintServiceCategory(ctx context.Context, input *NewPrintServiceCategory) (*PrintServiceCategory, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	printServiceCategory := PrintServiceCategory{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
		SortOrder:   input.SortOrder,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&printServiceCategory).Error
	if err != nil {
		return nil, err
	}

	return &printServiceCategory, nil
}

func UpdatePrintServiceCategory(ctx context.Context, id int, input *NewPrintServiceCategory) (*PrintServiceCategory, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	printServiceCategory, err := utils.FetchModel[PrintServiceCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&printServiceCategory).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
		"SortOrder":   input.SortOrder,
	}).Error
	if err != nil {
		return nil, err
	}
	return printServiceCategory, nil
}

func DeletePrintServiceCategory(ctx context.Context, id int) (*PrintServiceCategory, error) {

	result, err := utils.FetchModel[PrintServiceCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	// refuse while priced items still reference the category
	count, err := utils.ResourceCountWhere[PrintServiceItem](ctx, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category has print service items")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func ToggleActivePrintServiceCategory(ctx context.Context, id int, isActive bool) (*PrintServiceCategory, error) {

	return ToggleActiveModel[PrintServiceCategory](ctx, id, isActive)
}

func GetPrintServiceCategory(ctx context.Context, id int) (*PrintServiceCategory, error) {

	return GetResource[PrintServiceCategory](ctx, id)
}

func GetPrintServiceCategories(ctx context.Context) ([]*PrintServiceCategory, error) {

	db := config.GetDB()
	var results []*PrintServiceCategory

	err := db.WithContext(ctx).Order("sort_order").Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
