package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

type UserProfile struct {
	ID                   int               `gorm:"primary_key" json:"id"`
	UserId               int               `gorm:"unique;not null" json:"user_id"`
	CanAccessTechnology  *bool             `gorm:"not null;default:false" json:"can_access_technology"`
	CanAccessPrintDesign *bool             `gorm:"not null;default:false" json:"can_access_print_design"`
	PrimaryDepartment    PrimaryDepartment `gorm:"type:enum('technology', 'print_design', 'master');default:technology" json:"primary_department"`
	Phone                string            `gorm:"size:20" json:"phone"`
	EmployeeId           *string           `gorm:"size:20;unique" json:"employee_id"`
	CreatedAt            time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUserProfile struct {
	CanAccessTechnology  *bool             `json:"can_access_technology"`
	CanAccessPrintDesign *bool             `json:"can_access_print_design"`
	PrimaryDepartment    PrimaryDepartment `json:"primary_department"`
	Phone                string            `json:"phone"`
	EmployeeId           string            `json:"employee_id"`
}

// master users can work both boards
func (profile UserProfile) IsMasterUser() bool {
	return utils.DereferencePtr(profile.CanAccessTechnology) &&
		utils.DereferencePtr(profile.CanAccessPrintDesign)
}

func (profile UserProfile) GetAccessibleDepartments() []Department {
	var departments []Department
	if utils.DereferencePtr(profile.CanAccessTechnology) {
		departments = append(departments, DepartmentTechnology)
	}
	if utils.DereferencePtr(profile.CanAccessPrintDesign) {
		departments = append(departments, DepartmentPrintDesign)
	}
	return departments
}

func (profile UserProfile) CanAccessDepartment(department Department) bool {
	switch department {
	case DepartmentTechnology:
		return utils.DereferencePtr(profile.CanAccessTechnology)
	case DepartmentPrintDesign:
		return utils.DereferencePtr(profile.CanAccessPrintDesign)
	default:
		return false
	}
}

func (profile UserProfile) GetAccessLevel() string {
	if profile.IsMasterUser() {
		return "Master Access"
	} else if utils.DereferencePtr(profile.CanAccessTechnology) {
		return "Technology Only"
	} else if utils.DereferencePtr(profile.CanAccessPrintDesign) {
		return "Print & Design Only"
	}
	return "No Access"
}

// runs inside the user's transaction so a user row never lands without its profile
func ensureUserProfile(tx *gorm.DB, userId int, input *NewUserProfile) error {

	var profile UserProfile
	err := tx.Model(&UserProfile{}).Where("user_id = ?", userId).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile.UserId = userId
	if input != nil {
		if input.CanAccessTechnology != nil {
			profile.CanAccessTechnology = input.CanAccessTechnology
		}
		if input.CanAccessPrintDesign != nil {
			profile.CanAccessPrintDesign = input.CanAccessPrintDesign
		}
		if input.PrimaryDepartment != "" {
			profile.PrimaryDepartment = input.PrimaryDepartment
		}
		if input.Phone != "" {
			profile.Phone = input.Phone
		}
		profile.EmployeeId = utils.NilIfEmpty(input.EmployeeId)
	}
	if profile.CanAccessTechnology == nil {
		profile.CanAccessTechnology = utils.NewFalse()
	}
	if profile.CanAccessPrintDesign == nil {
		profile.CanAccessPrintDesign = utils.NewFalse()
	}
	if profile.PrimaryDepartment == "" {
		profile.PrimaryDepartment = PrimaryDepartmentTechnology
	}

	return tx.Save(&profile).Error
}

func GetUserProfile(ctx context.Context, userId int) (*UserProfile, error) {

	db := config.GetDB()
	var result UserProfile

	if err := db.WithContext(ctx).Where("user_id = ?", userId).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	return &result, nil
}

func UpdateUserProfile(ctx context.Context, userId int, input *NewUserProfile) (*UserProfile, error) {

	db := config.GetDB()

	if err := utils.ValidateResourceId[User](ctx, userId); err != nil {
		return nil, err
	}
	if input.PrimaryDepartment != "" {
		if _, err := ParsePrimaryDepartment(string(input.PrimaryDepartment)); err != nil {
			return nil, err
		}
	}
	if input.EmployeeId != "" {
		var count int64
		if err := db.WithContext(ctx).Model(&UserProfile{}).
			Where("employee_id = ?", input.EmployeeId).
			Not("user_id = ?", userId).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("duplicate employee_id")
		}
	}

	tx := db.Begin()
	if err := ensureUserProfile(tx.WithContext(ctx), userId, input); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetUserProfile(ctx, userId)
}
