package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

type PrintServiceItem struct {
	ID                 int                   `gorm:"primary_key" json:"id"`
	CategoryId         int                   `gorm:"index;not null" json:"category_id" binding:"required"`
	Category           *PrintServiceCategory `json:"category"`
	Name               string                `gorm:"size:200;not null" json:"name" binding:"required"`
	Description        string                `gorm:"type:text" json:"description"`
	UnitType           PrintUnitType         `gorm:"type:enum('each', 'sqft', 'linft', 'sheet', 'hour', 'day', 'project');default:each" json:"unit_type"`
	BasePrice          decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"base_price"`
	PaperType          PaperType             `gorm:"type:enum('standard', 'premium', 'cardstock', 'vinyl', 'canvas', 'fabric', 'metal', 'acrylic', 'foam_board', 'coroplast', 'banner');default:standard" json:"paper_type"`
	FinishType         FinishType            `gorm:"type:enum('none', 'gloss', 'matte', 'satin', 'uv_coating', 'laminated', 'embossed', 'foil_stamped');default:none" json:"finish_type"`
	MinQuantity        int                   `gorm:"not null;default:1" json:"min_quantity"`
	MaxQuantity        *int                  `json:"max_quantity"`
	SetupFee           decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"setup_fee"`
	Tier1Qty           int                   `gorm:"not null;default:1" json:"tier_1_qty"`
	Tier1Price         decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"tier_1_price"`
	Tier2Qty           *int                  `json:"tier_2_qty"`
	Tier2Price         *decimal.Decimal      `gorm:"type:decimal(20,4)" json:"tier_2_price"`
	Tier3Qty           *int                  `json:"tier_3_qty"`
	Tier3Price         *decimal.Decimal      `gorm:"type:decimal(20,4)" json:"tier_3_price"`
	IsActive           *bool                 `gorm:"not null;default:true" json:"is_active"`
	RequiresDesign     *bool                 `gorm:"not null;default:false" json:"requires_design"`
	ProductionTimeDays int                   `gorm:"not null;default:1" json:"production_time_days"`
	CreatedAt          time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPrintServiceItem struct {
	CategoryId         int              `json:"category_id" binding:"required"`
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	UnitType           PrintUnitType    `json:"unit_type"`
	BasePrice          decimal.Decimal  `json:"base_price"`
	PaperType          PaperType        `json:"paper_type"`
	FinishType         FinishType       `json:"finish_type"`
	MinQuantity        int              `json:"min_quantity"`
	MaxQuantity        *int             `json:"max_quantity"`
	SetupFee           decimal.Decimal  `json:"setup_fee"`
	Tier1Qty           int              `json:"tier_1_qty"`
	Tier1Price         decimal.Decimal  `json:"tier_1_price"`
	Tier2Qty           *int             `json:"tier_2_qty"`
	Tier2Price         *decimal.Decimal `json:"tier_2_price"`
	Tier3Qty           *int             `json:"tier_3_qty"`
	Tier3Price         *decimal.Decimal `json:"tier_3_price"`
	RequiresDesign     *bool            `json:"requires_design"`
	ProductionTimeDays int              `json:"production_time_days"`
}

// PriceForQuantity resolves the per-unit price from the quantity tiers.
// the deepest tier whose threshold is met wins, tier 1 is the floor
func (item *PrintServiceItem) PriceForQuantity(quantity int) decimal.Decimal {
	if item.Tier3Qty != nil && item.Tier3Price != nil && quantity >= *item.Tier3Qty {
		return *item.Tier3Price
	}
	if item.Tier2Qty != nil && item.Tier2Price != nil && quantity >= *item.Tier2Qty {
		return *item.Tier2Price
	}
	return item.Tier1Price
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPrintServiceItem) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[PrintServiceItem](ctx, id); err != nil {
			return err
		}
	}
	// exists category
	if err := utils.ValidateResourceId[PrintServiceCategory](ctx, input.CategoryId); err != nil {
		return errors.New("print service category not found")
	}
	if input.UnitType != "" {
		if _, err := ParsePrintUnitType(string(input.UnitType)); err != nil {
			return err
		}
	}
	if input.PaperType != "" {
		if _, err := ParsePaperType(string(input.PaperType)); err != nil {
			return err
		}
	}
	if input.FinishType != "" {
		if _, err := ParseFinishType(string(input.FinishType)); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnitPrice(input.BasePrice); err != nil {
		return err
	}
	if err := utils.ValidateSetupFee(input.SetupFee); err != nil {
		return err
	}
	if err := utils.ValidateUnitPrice(input.Tier1Price); err != nil {
		return err
	}
	if input.MinQuantity < 1 {
		return errors.New("min quantity must be at least 1")
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return errors.New("max quantity must not be less than min quantity")
	}
	// tiers must come with both a threshold and a price, in ascending order
	if (input.Tier2Qty == nil) != (input.Tier2Price == nil) {
		return errors.New("tier 2 requires both quantity and price")
	}
	if (input.Tier3Qty == nil) != (input.Tier3Price == nil) {
		return errors.New("tier 3 requires both quantity and price")
	}
	if input.Tier3Qty != nil && input.Tier2Qty == nil {
		return errors.New("tier 3 requires tier 2")
	}
	if input.Tier2Qty != nil && *input.Tier2Qty <= input.Tier1Qty {
		return errors.New("tier 2 quantity must be greater than tier 1 quantity")
	}
	if input.Tier3Qty != nil && input.Tier2Qty != nil && *input.Tier3Qty <= *input.Tier2Qty {
		return errors.New("tier 3 quantity must be greater than tier 2 quantity")
	}
	return nil
}

func CreatePrintServiceItem(ctx context.Context, input *NewPrintServiceItem) (*PrintServiceItem, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	unitType := input.UnitType
	if unitType == "" {
		unitType = PrintUnitTypeEach
	}
	paperType := input.PaperType
	if paperType == "" {
		paperType = PaperTypeStandard
	}
	finishType := input.FinishType
	if finishType == "" {
		finishType = FinishTypeNone
	}
	minQuantity := input.MinQuantity
	if minQuantity == 0 {
		minQuantity = 1
	}
	tier1Qty := input.Tier1Qty
	if tier1Qty == 0 {
		tier1Qty = 1
	}
	productionTimeDays := input.ProductionTimeDays
	if productionTimeDays == 0 {
		productionTimeDays = 1
	}
	requiresDesign := input.RequiresDesign
	if requiresDesign == nil {
		requiresDesign = utils.NewFalse()
	}

	printServiceItem := PrintServiceItem{
		CategoryId:         input.CategoryId,
		Name:               input.Name,
		Description:        input.Description,
		UnitType:           unitType,
		BasePrice:          input.BasePrice,
		PaperType:          paperType,
		FinishType:         finishType,
		MinQuantity:        minQuantity,
		MaxQuantity:        input.MaxQuantity,
		SetupFee:           input.SetupFee,
		Tier1Qty:           tier1Qty,
		Tier1Price:         input.Tier1Price,
		Tier2Qty:           input.Tier2Qty,
		Tier2Price:         input.Tier2Price,
		Tier3Qty:           input.Tier3Qty,
		Tier3Price:         input.Tier3Price,
		IsActive:           utils.NewTrue(),
		RequiresDesign:     requiresDesign,
		ProductionTimeDays: productionTimeDays,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&printServiceItem).Error
	if err != nil {
		return nil, err
	}

	return &printServiceItem, nil
}

func UpdatePrintServiceItem(ctx context.Context, id int, input *NewPrintServiceItem) (*PrintServiceItem, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	printServiceItem, err := utils.FetchModel[PrintServiceItem](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&printServiceItem).Updates(map[string]interface{}{
		"CategoryId":         input.CategoryId,
		"Name":               input.Name,
		"Description":        input.Description,
		"UnitType":           input.UnitType,
		"BasePrice":          input.BasePrice,
		"PaperType":          input.PaperType,
		"FinishType":         input.FinishType,
		"MinQuantity":        input.MinQuantity,
		"MaxQuantity":        input.MaxQuantity,
		"SetupFee":           input.SetupFee,
		"Tier1Qty":           input.Tier1Qty,
		"Tier1Price":         input.Tier1Price,
		"Tier2Qty":           input.Tier2Qty,
		"Tier2Price":         input.Tier2Price,
		"Tier3Qty":           input.Tier3Qty,
		"Tier3Price":         input.Tier3Price,
		"RequiresDesign":     input.RequiresDesign,
		"ProductionTimeDays": input.ProductionTimeDays,
	}).Error
	if err != nil {
		return nil, err
	}
	return printServiceItem, nil
}

func DeletePrintServiceItem(ctx context.Context, id int) (*PrintServiceItem, error) {

	result, err := utils.FetchModel[PrintServiceItem](ctx, id)
	if err != nil {
		return nil, err
	}

	// refuse while estimate lines still reference the item
	count, err := utils.ResourceCountWhere[PrintEstimateItem](ctx, "service_item_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("print service item is referenced by estimate lines")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetPrintServiceItem(ctx context.Context, id int) (*PrintServiceItem, error) {

	return GetResource[PrintServiceItem](ctx, id)
}

func GetPrintServiceItems(ctx context.Context, categoryId *int, isActive *bool, search *string) ([]*PrintServiceItem, error) {

	db := config.GetDB()
	var results []*PrintServiceItem

	dbCtx := db.WithContext(ctx).Model(&PrintServiceItem{}).Preload("Category")
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

func ToggleActivePrintServiceItem(ctx context.Context, id int, isActive bool) (*PrintServiceItem, error) {

	return ToggleActiveModel[PrintServiceItem](ctx, id, isActive)
}
