package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

// computer & contact record for a helpdesk customer, keyed by email
type CustomerInfo struct {
	ID              int       `gorm:"primary_key" json:"id"`
	CustomerEmail   string    `gorm:"size:100;not null;unique" json:"customer_email" binding:"required"`
	CustomerName    string    `gorm:"size:100;not null" json:"customer_name" binding:"required"`
	Company         string    `gorm:"size:100" json:"company"`
	Phone           string    `gorm:"size:20" json:"phone"`
	ComputerMake    string    `gorm:"size:50" json:"computer_make"`
	ComputerModel   string    `gorm:"size:50" json:"computer_model"`
	OperatingSystem string    `gorm:"size:50" json:"operating_system"`
	OsVersion       string    `gorm:"size:50" json:"os_version"`
	SerialNumber    string    `gorm:"size:50" json:"serial_number"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomerInfo struct {
	CustomerEmail   string `json:"customer_email" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	Company         string `json:"company"`
	Phone           string `json:"phone"`
	ComputerMake    string `json:"computer_make"`
	ComputerModel   string `json:"computer_model"`
	OperatingSystem string `json:"operating_system"`
	OsVersion       string `json:"os_version"`
	SerialNumber    string `json:"serial_number"`
	Notes           string `json:"notes"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCustomerInfo) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[CustomerInfo](ctx, id); err != nil {
			return err
		}
	}
	if !utils.IsValidEmail(input.CustomerEmail) {
		return errors.New("invalid customer email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	// one record per email
	if err := utils.ValidateUnique[CustomerInfo](ctx, "customer_email", input.CustomerEmail, id); err != nil {
		return err
	}
	return nil
}

func CreateCustomerInfo(ctx context.Context, input *NewCustomerInfo) (*CustomerInfo, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	customerInfo := CustomerInfo{
		CustomerEmail:   input.CustomerEmail,
		CustomerName:    input.CustomerName,
		Company:         input.Company,
		Phone:           input.Phone,
		ComputerMake:    input.ComputerMake,
		ComputerModel:   input.ComputerModel,
		OperatingSystem: input.OperatingSystem,
		OsVersion:       input.OsVersion,
		SerialNumber:    input.SerialNumber,
		Notes:           input.Notes,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&customerInfo).Error
	if err != nil {
		return nil, err
	}

	return &customerInfo, nil
}

func UpdateCustomerInfo(ctx context.Context, id int, input *NewCustomerInfo) (*CustomerInfo, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customerInfo, err := utils.FetchModel[CustomerInfo](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&customerInfo).Updates(map[string]interface{}{
		"CustomerEmail":   input.CustomerEmail,
		"CustomerName":    input.CustomerName,
		"Company":         input.Company,
		"Phone":           input.Phone,
		"ComputerMake":    input.ComputerMake,
		"ComputerModel":   input.ComputerModel,
		"OperatingSystem": input.OperatingSystem,
		"OsVersion":       input.OsVersion,
		"SerialNumber":    input.SerialNumber,
		"Notes":           input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return customerInfo, nil
}

func DeleteCustomerInfo(ctx context.Context, id int) (*CustomerInfo, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[CustomerInfo](ctx, id)
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

func GetCustomerInfo(ctx context.Context, id int) (*CustomerInfo, error) {

	return utils.FetchModel[CustomerInfo](ctx, id)
}

// nil when the email has no record yet
func GetCustomerInfoByEmail(ctx context.Context, email string) (*CustomerInfo, error) {

	db := config.GetDB()
	var result CustomerInfo

	err := db.WithContext(ctx).Model(&CustomerInfo{}).
		Where("customer_email = ?", email).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &result, nil
}

func GetCustomerInfos(ctx context.Context, search *string) ([]*CustomerInfo, error) {

	db := config.GetDB()
	var results []*CustomerInfo

	dbCtx := db.WithContext(ctx).Model(&CustomerInfo{})
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where(
			db.Where("customer_name LIKE ?", "%"+*search+"%").
				Or("customer_email LIKE ?", "%"+*search+"%").
				Or("company LIKE ?", "%"+*search+"%"))
	}

	if err := dbCtx.Order("customer_name").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
