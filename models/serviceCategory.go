package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type ServiceCategory struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewServiceCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewServiceCategory) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[ServiceCategory](ctx, id); err != nil {
			return err
		}
	}
	// name
	if err := utils.ValidateUnique[ServiceCategory](ctx, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateServiceCategory(ctx context.Context, input *NewServiceCategory) (*ServiceCategory, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	serviceCategory := ServiceCategory{
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&serviceCategory).Error
	if err != nil {
		return nil, err
	}

	return &serviceCategory, nil
}

func UpdateServiceCategory(ctx context.Context, id int, input *NewServiceCategory) (*ServiceCategory, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	serviceCategory, err := utils.FetchModel[ServiceCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&serviceCategory).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
		"SortOrder":   input.SortOrder,
	}).Error
	if err != nil {
		return nil, err
	}
	return serviceCategory, nil
}

func DeleteServiceCategory(ctx context.Context, id int) (*ServiceCategory, error) {

	result, err := utils.FetchModel[ServiceCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	// refuse while priced items still reference the category
	count, err := utils.ResourceCountWhere[ServiceItem](ctx, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category has service items")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetServiceCategory(ctx context.Context, id int) (*ServiceCategory, error) {

	return GetResource[ServiceCategory](ctx, id)
}

func GetServiceCategories(ctx context.Context) ([]*ServiceCategory, error) {

	db := config.GetDB()
	var results []*ServiceCategory

	err := db.WithContext(ctx).Order("sort_order").Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
