package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

// PrintCustomer is the print & design department's own customer book,
// kept separate from the technology side's bid customers.
type PrintCustomer struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	Name                   string          `gorm:"size:100" json:"name" binding:"required"`
	Company                string          `gorm:"size:100" json:"company"`
	CustomerType           CustomerType    `gorm:"type:enum('individual', 'business', 'non_profit', 'government');default:business" json:"customer_type"`
	Email                  string          `gorm:"size:100;not null" json:"email" binding:"required"`
	Phone                  string          `gorm:"size:20" json:"phone" binding:"required"`
	Address                string          `gorm:"type:text" json:"address"`
	City                   string          `gorm:"size:50" json:"city"`
	State                  string          `gorm:"size:50" json:"state"`
	ZipCode                string          `gorm:"size:10" json:"zip_code"`
	PreferredContactMethod ContactMethod   `gorm:"type:enum('email', 'phone', 'text');default:email" json:"preferred_contact_method"`
	TaxExempt              *bool           `gorm:"not null;default:false" json:"tax_exempt"`
	TaxExemptNumber        string          `gorm:"size:50" json:"tax_exempt_number"`
	CreditApproved         *bool           `gorm:"not null;default:false" json:"credit_approved"`
	CreditLimit            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit_limit"`
	CreatedById            int             `json:"created_by_id"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPrintCustomer struct {
	Name                   string          `json:"name" binding:"required"`
	Company                string          `json:"company"`
	CustomerType           CustomerType    `json:"customer_type"`
	Email                  string          `json:"email" binding:"required"`
	Phone                  string          `json:"phone" binding:"required"`
	Address                string          `json:"address"`
	City                   string          `json:"city"`
	State                  string          `json:"state"`
	ZipCode                string          `json:"zip_code"`
	PreferredContactMethod ContactMethod   `json:"preferred_contact_method"`
	TaxExempt              *bool           `json:"tax_exempt"`
	TaxExemptNumber        string          `json:"tax_exempt_number"`
	CreditApproved         *bool           `json:"credit_approved"`
	CreditLimit            decimal.Decimal `json:"credit_limit"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPrintCustomer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[PrintCustomer](ctx, id); err != nil {
			return err
		}
	}
	if input.CustomerType != "" {
		if _, err := ParseCustomerType(string(input.CustomerType)); err != nil {
			return err
		}
	}
	if input.PreferredContactMethod != "" {
		if _, err := ParseContactMethod(string(input.PreferredContactMethod)); err != nil {
			return err
		}
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
		return err
	}
	if input.CreditLimit.IsNegative() {
		return errors.New("credit limit must not be negative")
	}
	// an exemption number alone is not an exemption
	if input.TaxExemptNumber != "" && (input.TaxExempt == nil || !*input.TaxExempt) {
		return errors.New("tax exempt number requires the tax exempt flag")
	}
	return nil
}

func CreatePrintCustomer(ctx context.Context, input *NewPrintCustomer) (*PrintCustomer, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	customerType := input.CustomerType
	if customerType == "" {
		customerType = CustomerTypeBusiness
	}
	contactMethod := input.PreferredContactMethod
	if contactMethod == "" {
		contactMethod = ContactMethodEmail
	}
	taxExempt := input.TaxExempt
	if taxExempt == nil {
		taxExempt = utils.NewFalse()
	}
	creditApproved := input.CreditApproved
	if creditApproved == nil {
		creditApproved = utils.NewFalse()
	}

	printCustomer := PrintCustomer{
		Name:                   input.Name,
		Company:                input.Company,
		CustomerType:           customerType,
		Email:                  input.Email,
		Phone:                  input.Phone,
		Address:                input.Address,
		City:                   input.City,
		State:                  input.State,
		ZipCode:                input.ZipCode,
		PreferredContactMethod: contactMethod,
		TaxExempt:              taxExempt,
		TaxExemptNumber:        input.TaxExemptNumber,
		CreditApproved:         creditApproved,
		CreditLimit:            input.CreditLimit,
		CreatedById:            userId,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&printCustomer).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &printCustomer, nil
}

func UpdatePrintCustomer(ctx context.Context, id int, input *NewPrintCustomer) (*PrintCustomer, error) {

	printCustomer, err := utils.FetchModel[PrintCustomer](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&printCustomer).Updates(map[string]interface{}{
		"Name":                   input.Name,
		"Company":                input.Company,
		"CustomerType":           input.CustomerType,
		"Email":                  input.Email,
		"Phone":                  input.Phone,
		"Address":                input.Address,
		"City":                   input.City,
		"State":                  input.State,
		"ZipCode":                input.ZipCode,
		"PreferredContactMethod": input.PreferredContactMethod,
		"TaxExempt":              input.TaxExempt,
		"TaxExemptNumber":        input.TaxExemptNumber,
		"CreditApproved":         input.CreditApproved,
		"CreditLimit":            input.CreditLimit,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return printCustomer, nil
}

// a customer with estimates on file stays on file
func DeletePrintCustomer(ctx context.Context, id int) (*PrintCustomer, error) {

	printCustomer, err := utils.FetchModel[PrintCustomer](ctx, id)
	if err != nil {
		return nil, err
	}

	estimateCount, err := utils.ResourceCountWhere[PrintEstimate](ctx, "customer_id = ?", id)
	if err != nil {
		return nil, err
	}
	if estimateCount > 0 {
		return nil, errors.New("customer has print estimates")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&printCustomer).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return printCustomer, nil
}

func GetPrintCustomer(ctx context.Context, id int) (*PrintCustomer, error) {
	return utils.FetchModel[PrintCustomer](ctx, id)
}

func GetPrintCustomers(ctx context.Context,
	customerType *CustomerType, search *string) ([]*PrintCustomer, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)

	if customerType != nil {
		dbCtx = dbCtx.Where("customer_type = ?", *customerType)
	}
	if search != nil && *search != "" {
		dbCtx = dbCtx.Where(
			db.Where("name LIKE ?", "%"+*search+"%").
				Or("company LIKE ?", "%"+*search+"%").
				Or("email LIKE ?", "%"+*search+"%"))
	}

	var printCustomers []*PrintCustomer
	err := dbCtx.Order("name").Limit(config.SearchLimit).Find(&printCustomers).Error
	if err != nil {
		return nil, err
	}
	return printCustomers, nil
}
