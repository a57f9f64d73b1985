package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name" binding:"required"`
	Company   string    `gorm:"size:200" json:"company"`
	Email     string    `gorm:"size:100;not null" json:"email" binding:"required"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCustomer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Customer](ctx, id); err != nil {
			return err
		}
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email address")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&customer).Error
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&customer).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Company": input.Company,
		"Email":   input.Email,
		"Phone":   input.Phone,
		"Address": input.Address,
	}).Error
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {

	result, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	// a customer with bids on file stays on file
	count, err := utils.ResourceCountWhere[BidSheet](ctx, "customer_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("customer has bid sheets")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {

	return utils.FetchModel[Customer](ctx, id)
}

func GetCustomers(ctx context.Context, search *string) ([]*Customer, error) {

	db := config.GetDB()
	var results []*Customer

	dbCtx := db.WithContext(ctx).Model(&Customer{})
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where(
			db.Where("name LIKE ?", "%"+*search+"%").
				Or("company LIKE ?", "%"+*search+"%").
				Or("email LIKE ?", "%"+*search+"%"))
	}

	if err := dbCtx.Order("name").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
