package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

type ServiceItem struct {
	ID               int              `gorm:"primary_key" json:"id"`
	CategoryId       int              `gorm:"index;not null" json:"category_id" binding:"required"`
	Category         *ServiceCategory `json:"category"`
	Name             string           `gorm:"size:200;not null" json:"name" binding:"required"`
	Description      string           `gorm:"type:text" json:"description"`
	DefaultUnitPrice decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"default_unit_price"`
	UnitType         string           `gorm:"size:50;default:each" json:"unit_type"`
	IsActive         *bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewServiceItem struct {
	CategoryId       int             `json:"category_id" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	DefaultUnitPrice decimal.Decimal `json:"default_unit_price"`
	UnitType         string          `json:"unit_type"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewServiceItem) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[ServiceItem](ctx, id); err != nil {
			return err
		}
	}
	// exists category
	if err := utils.ValidateResourceId[ServiceCategory](ctx, input.CategoryId); err != nil {
		return errors.New("service category not found")
	}
	if err := utils.ValidateUnitPrice(input.DefaultUnitPrice); err != nil {
		return err
	}
	return nil
}

func CreateServiceItem(ctx context.Context, input *NewServiceItem) (*ServiceItem, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	unitType := input.UnitType
	if unitType == "" {
		unitType = "each"
	}

	serviceItem := ServiceItem{
		CategoryId:       input.CategoryId,
		Name:             input.Name,
		Description:      input.Description,
		DefaultUnitPrice: input.DefaultUnitPrice,
		UnitType:         unitType,
		IsActive:         utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&serviceItem).Error
	if err != nil {
		return nil, err
	}

	return &serviceItem, nil
}

func UpdateServiceItem(ctx context.Context, id int, input *NewServiceItem) (*ServiceItem, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	serviceItem, err := utils.FetchModel[ServiceItem](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&serviceItem).Updates(map[string]interface{}{
		"CategoryId":       input.CategoryId,
		"Name":             input.Name,
		"Description":      input.Description,
		"DefaultUnitPrice": input.DefaultUnitPrice,
		"UnitType":         input.UnitType,
	}).Error
	if err != nil {
		return nil, err
	}
	return serviceItem, nil
}

func DeleteServiceItem(ctx context.Context, id int) (*ServiceItem, error) {

	result, err := utils.FetchModel[ServiceItem](ctx, id)
	if err != nil {
		return nil, err
	}

	// refuse while bid lines still reference the item
	count, err := utils.ResourceCountWhere[BidItem](ctx, "service_item_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("service item is referenced by bid items")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetServiceItem(ctx context.Context, id int) (*ServiceItem, error) {

	return GetResource[ServiceItem](ctx, id)
}

func GetServiceItems(ctx context.Context, categoryId *int, isActive *bool, search *string) ([]*ServiceItem, error) {

	db := config.GetDB()
	var results []*ServiceItem

	dbCtx := db.WithContext(ctx).Model(&ServiceItem{}).Preload("Category")
	if categoryId != nil && *categoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *categoryId)
	}
	if isActive != nil {
		dbCtx = dbCtx.Where("is_active = ?", *isActive)
	}
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*search+"%")
	}

	if err := dbCtx.Order("name").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveServiceItem(ctx context.Context, id int, isActive bool) (*ServiceItem, error) {

	return ToggleActiveModel[ServiceItem](ctx, id, isActive)
}
