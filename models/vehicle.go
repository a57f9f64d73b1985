package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

// Vehicle is a customer or shop vehicle tracked for drop-offs and installs.
type Vehicle struct {
	ID              int               `gorm:"primary_key" json:"id"`
	LicensePlate    string            `gorm:"size:20;not null;unique" json:"license_plate" binding:"required"`
	Make            string            `gorm:"size:50;not null" json:"make" binding:"required"`
	Model           string            `gorm:"size:50;not null" json:"model" binding:"required"`
	Year            int               `gorm:"not null" json:"year" binding:"required"`
	Color           string            `gorm:"size:50;not null" json:"color" binding:"required"`
	Vin             *string           `gorm:"size:17;unique" json:"vin"`
	Status          VehicleStatus     `gorm:"type:enum('active', 'maintenance', 'out_of_service', 'retired');default:active" json:"status"`
	VehicleType     VehicleType       `gorm:"type:enum('truck', 'van', 'car', 'trailer', 'equipment');default:truck" json:"vehicle_type"`
	Department      VehicleDepartment `gorm:"type:enum('technology', 'print_design', 'shared');default:shared" json:"department"`
	CurrentDriver   string            `gorm:"size:100" json:"current_driver"`
	CurrentMileage  *int              `json:"current_mileage"`
	NextServiceDate *time.Time        `json:"next_service_date"`
	TechCustomerId  *int              `gorm:"index" json:"tech_customer_id"`
	TechCustomer    *Customer         `gorm:"foreignKey:TechCustomerId" json:"tech_customer,omitempty"`
	PrintCustomerId *int              `gorm:"index" json:"print_customer_id"`
	PrintCustomer   *PrintCustomer    `gorm:"foreignKey:PrintCustomerId" json:"print_customer,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVehicle struct {
	LicensePlate    string            `json:"license_plate" binding:"required"`
	Make            string            `json:"make" binding:"required"`
	Model           string            `json:"model" binding:"required"`
	Year            int               `json:"year" binding:"required"`
	Color           string            `json:"color" binding:"required"`
	Vin             *string           `json:"vin"`
	Status          VehicleStatus     `json:"status"`
	VehicleType     VehicleType       `json:"vehicle_type"`
	Department      VehicleDepartment `json:"department"`
	CurrentDriver   string            `json:"current_driver"`
	CurrentMileage  *int              `json:"current_mileage"`
	NextServiceDate *time.Time        `json:"next_service_date"`
	TechCustomerId  *int              `json:"tech_customer_id"`
	PrintCustomerId *int              `json:"print_customer_id"`
	Notes           string            `json:"notes"`
}

func (obj Vehicle) GetId() int {
	return obj.ID
}

// CustomerName resolves whichever side of the house owns the vehicle.
func (v *Vehicle) CustomerName() string {
	if v.TechCustomer != nil {
		return v.TechCustomer.Name
	}
	if v.PrintCustomer != nil {
		return v.PrintCustomer.Name
	}
	return "No Customer"
}

// validate input for both create & update. (id = 0 for create)
func (input *NewVehicle) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Vehicle](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Vehicle](ctx, "license_plate", input.LicensePlate, id); err != nil {
		return errors.New("license plate already exists")
	}
	if input.Vin != nil && *input.Vin != "" {
		if len(*input.Vin) != 17 {
			return errors.New("vin must be 17 characters")
		}
		if err := utils.ValidateUnique[Vehicle](ctx, "vin", *input.Vin, id); err != nil {
			return errors.New("vin already exists")
		}
	}
	if input.Status != "" {
		if _, err := ParseVehicleStatus(string(input.Status)); err != nil {
			return err
		}
	}
	if input.VehicleType != "" {
		if _, err := ParseVehicleType(string(input.VehicleType)); err != nil {
			return err
		}
	}
	if input.Department != "" {
		if _, err := ParseVehicleDepartment(string(input.Department)); err != nil {
			return err
		}
	}
	if input.CurrentMileage != nil && *input.CurrentMileage < 0 {
		return errors.New("mileage must not be negative")
	}
	if input.TechCustomerId != nil {
		if err := utils.ValidateResourceId[Customer](ctx, *input.TechCustomerId); err != nil {
			return errors.New("customer not found")
		}
	}
	if input.PrintCustomerId != nil {
		if err := utils.ValidateResourceId[PrintCustomer](ctx, *input.PrintCustomerId); err != nil {
			return errors.New("print customer not found")
		}
	}
	return nil
}

func CreateVehicle(ctx context.Context, input *NewVehicle) (*Vehicle, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = VehicleStatusActive
	}
	vehicleType := input.VehicleType
	if vehicleType == "" {
		vehicleType = VehicleTypeTruck
	}
	department := input.Department
	if department == "" {
		department = VehicleDepartmentShared
	}
	// empty vin stays null, the column is unique
	vin := input.Vin
	if vin != nil && *vin == "" {
		vin = nil
	}

	vehicle := Vehicle{
		LicensePlate:    input.LicensePlate,
		Make:            input.Make,
		Model:           input.Model,
		Year:            input.Year,
		Color:           input.Color,
		Vin:             vin,
		Status:          status,
		VehicleType:     vehicleType,
		Department:      department,
		CurrentDriver:   input.CurrentDriver,
		CurrentMileage:  input.CurrentMileage,
		NextServiceDate: input.NextServiceDate,
		TechCustomerId:  input.TechCustomerId,
		PrintCustomerId: input.PrintCustomerId,
		Notes:           input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}

	return &vehicle, nil
}

func UpdateVehicle(ctx context.Context, id int, input *NewVehicle) (*Vehicle, error) {

	beforeUpdate, err := utils.FetchModel[Vehicle](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	vin := input.Vin
	if vin != nil && *vin == "" {
		vin = nil
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&beforeUpdate).Updates(map[string]interface{}{
		"LicensePlate":    input.LicensePlate,
		"Make":            input.Make,
		"Model":           input.Model,
		"Year":            input.Year,
		"Color":           input.Color,
		"Vin":             vin,
		"VehicleType":     input.VehicleType,
		"Department":      input.Department,
		"CurrentDriver":   input.CurrentDriver,
		"CurrentMileage":  input.CurrentMileage,
		"NextServiceDate": input.NextServiceDate,
		"TechCustomerId":  input.TechCustomerId,
		"PrintCustomerId": input.PrintCustomerId,
		"Notes":           input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Vehicle](ctx, id, "TechCustomer", "PrintCustomer")
}

func UpdateVehicleStatus(ctx context.Context, id int, status VehicleStatus) (*Vehicle, error) {

	if _, err := ParseVehicleStatus(string(status)); err != nil {
		return nil, err
	}

	beforeUpdate, err := utils.FetchModel[Vehicle](ctx, id)
	if err != nil {
		return nil, err
	}
	if beforeUpdate.Status == status {
		return beforeUpdate, nil
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&beforeUpdate).Updates(map[string]interface{}{
		"Status": status,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Vehicle](ctx, id)
}

func DeleteVehicle(ctx context.Context, id int) (*Vehicle, error) {

	result, err := utils.FetchModel[Vehicle](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	// the drop-off history goes with the vehicle
	if err := tx.WithContext(ctx).Where("vehicle_id = ?", id).Delete(&VehicleDropOff{}).Error; err != nil {
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

func GetVehicle(ctx context.Context, id int) (*Vehicle, error) {

	return utils.FetchModel[Vehicle](ctx, id, "TechCustomer", "PrintCustomer")
}

func GetVehicles(ctx context.Context,
	status *VehicleStatus,
	vehicleType *VehicleType,
	department *VehicleDepartment,
	search *string) ([]*Vehicle, error) {

	db := config.GetDB()
	var results []*Vehicle

	dbCtx := db.WithContext(ctx).Model(&Vehicle{}).
		Preload("TechCustomer").Preload("PrintCustomer")
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if vehicleType != nil {
		dbCtx = dbCtx.Where("vehicle_type = ?", *vehicleType)
	}
	if department != nil {
		dbCtx = dbCtx.Where("department = ?", *department)
	}
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where(
			db.Where("license_plate LIKE ?", "%"+*search+"%").
				Or("make LIKE ?", "%"+*search+"%").
				Or("model LIKE ?", "%"+*search+"%").
				Or("vin LIKE ?", "%"+*search+"%"))
	}

	if err := dbCtx.Order("license_plate").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
