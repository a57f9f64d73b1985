package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultCompanyName    = "Blue Line Technology"
	defaultCompanyAddress = "814 E. 10th Street\nAlamogordo, NM 88310"
	defaultCompanyPhone   = "575-479-7470"

	defaultTerms = "Payment is due within 30 days of invoice date. " +
		"50% deposit required before work begins. " +
		"Final payment due upon completion."

	defaultExclusions = "Permits and licensing fees\n" +
		"Electrical work requiring licensed electrician\n" +
		"Structural modifications\n" +
		"Unforeseen complications or changes to scope"
)

// single row, printed on every outgoing bid & estimate
type CompanyInfo struct {
	ID                int       `gorm:"primary_key" json:"id"`
	Name              string    `gorm:"size:200;not null" json:"name" binding:"required"`
	Address           string    `gorm:"type:text" json:"address"`
	Phone             string    `gorm:"size:20" json:"phone"`
	Email             string    `gorm:"size:100" json:"email"`
	Website           string    `gorm:"size:255" json:"website"`
	LogoUrl           string    `json:"logo_url"`
	DefaultTerms      string    `gorm:"type:text" json:"default_terms"`
	DefaultExclusions string    `gorm:"type:text" json:"default_exclusions"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCompanyInfo struct {
	Name              string `json:"name" binding:"required"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Website           string `json:"website"`
	LogoUrl           string `json:"logo_url"`
	DefaultTerms      string `json:"default_terms"`
	DefaultExclusions string `json:"default_exclusions"`
}

/*
caches:
	CompanyInfo
*/

// first row wins, seeded with the shop defaults when the table is empty
func GetCompanyInfo(ctx context.Context) (*CompanyInfo, error) {

	var companyInfo CompanyInfo

	exists, err := config.GetRedisObject("CompanyInfo", &companyInfo)
	if err != nil {
		return nil, err
	}
	if exists {
		return &companyInfo, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Order("id").First(&companyInfo).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		companyInfo = CompanyInfo{
			Name:              defaultCompanyName,
			Address:           defaultCompanyAddress,
			Phone:             defaultCompanyPhone,
			DefaultTerms:      defaultTerms,
			DefaultExclusions: defaultExclusions,
		}
		if err := db.WithContext(ctx).Create(&companyInfo).Error; err != nil {
			return nil, err
		}
	}

	if err := config.SetRedisObject("CompanyInfo", &companyInfo, 0); err != nil {
		return nil, err
	}

	return &companyInfo, nil
}

func UpdateCompanyInfo(ctx context.Context, input *NewCompanyInfo) (*CompanyInfo, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}

	companyInfo, err := GetCompanyInfo(ctx)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&companyInfo).Updates(map[string]interface{}{
		"Name":              input.Name,
		"Address":           input.Address,
		"Phone":             input.Phone,
		"Email":             input.Email,
		"Website":           input.Website,
		"LogoUrl":           input.LogoUrl,
		"DefaultTerms":      input.DefaultTerms,
		"DefaultExclusions": input.DefaultExclusions,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[CompanyInfo](ctx, companyInfo.ID)
}
