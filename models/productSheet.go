package models

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

// ProductSheet is a sellable print & design product with its spec options,
// shown to the shop floor and used to seed estimates.
type ProductSheet struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	Name               string          `gorm:"size:200;not null" json:"name" binding:"required"`
	ProductType        ProductType     `gorm:"type:enum('business_cards', 'brochures', 'flyers', 'banners', 'signs', 'vehicle_graphics', 'promotional', 'custom');not null" json:"product_type" binding:"required"`
	Description        string          `gorm:"type:text" json:"description"`
	AvailableSizes     string          `gorm:"type:text" json:"available_sizes"`
	AvailablePapers    string          `gorm:"type:text" json:"available_papers"`
	AvailableFinishes  string          `gorm:"type:text" json:"available_finishes"`
	ColorOptions       string          `gorm:"type:text" json:"color_options"`
	BasePrice          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_price"`
	PriceNotes         string          `gorm:"type:text" json:"price_notes"`
	MinQuantity        int             `gorm:"not null;default:1" json:"min_quantity"`
	ProductionTimeDays int             `gorm:"not null;default:1" json:"production_time_days"`
	SetupRequired      *bool           `gorm:"not null;default:false" json:"setup_required"`
	DesignIncluded     *bool           `gorm:"not null;default:false" json:"design_included"`
	IsActive           *bool           `gorm:"not null;default:true" json:"is_active"`
	Featured           *bool           `gorm:"not null;default:false" json:"featured"`
	SortOrder          int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedById        int             `gorm:"not null" json:"created_by_id"`
	Images             []*Image        `gorm:"polymorphic:Reference" json:"images"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProductSheet struct {
	Name               string          `json:"name" binding:"required"`
	ProductType        ProductType     `json:"product_type" binding:"required"`
	Description        string          `json:"description"`
	AvailableSizes     string          `json:"available_sizes"`
	AvailablePapers    string          `json:"available_papers"`
	AvailableFinishes  string          `json:"available_finishes"`
	ColorOptions       string          `json:"color_options"`
	BasePrice          decimal.Decimal `json:"base_price"`
	PriceNotes         string          `json:"price_notes"`
	MinQuantity        int             `json:"min_quantity"`
	ProductionTimeDays int             `json:"production_time_days"`
	SetupRequired      *bool           `json:"setup_required"`
	DesignIncluded     *bool           `json:"design_included"`
	SortOrder          int             `json:"sort_order"`
	Images             []*NewImage     `json:"image_urls"`
}

func (obj ProductSheet) GetId() int {
	return obj.ID
}

// option fields hold one choice per line
func splitOptionLines(raw string) []string {
	var options []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			options = append(options, line)
		}
	}
	return options
}

func (obj *ProductSheet) SizeOptions() []string {
	return splitOptionLines(obj.AvailableSizes)
}

func (obj *ProductSheet) PaperOptions() []string {
	return splitOptionLines(obj.AvailablePapers)
}

func (obj *ProductSheet) FinishOptions() []string {
	return splitOptionLines(obj.AvailableFinishes)
}

func (obj *ProductSheet) ColorChoices() []string {
	return splitOptionLines(obj.ColorOptions)
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProductSheet) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[ProductSheet](ctx, id); err != nil {
			return err
		}
	}
	if _, err := ParseProductType(string(input.ProductType)); err != nil {
		return err
	}
	if input.BasePrice.IsNegative() {
		return errors.New("base price must not be negative")
	}
	if input.MinQuantity < 0 {
		return errors.New("min quantity must not be negative")
	}
	return nil
}

func CreateProductSheet(ctx context.Context, input *NewProductSheet) (*ProductSheet, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	images, err := mapNewImages(input.Images, "product_sheets", 0)
	if err != nil {
		return nil, err
	}

	minQuantity := input.MinQuantity
	if minQuantity == 0 {
		minQuantity = 1
	}
	productionTimeDays := input.ProductionTimeDays
	if productionTimeDays == 0 {
		productionTimeDays = 1
	}
	setupRequired := input.SetupRequired
	if setupRequired == nil {
		setupRequired = utils.NewFalse()
	}
	designIncluded := input.DesignIncluded
	if designIncluded == nil {
		designIncluded = utils.NewFalse()
	}

	productSheet := ProductSheet{
		Name:               input.Name,
		ProductType:        input.ProductType,
		Description:        input.Description,
		AvailableSizes:     input.AvailableSizes,
		AvailablePapers:    input.AvailablePapers,
		AvailableFinishes:  input.AvailableFinishes,
		ColorOptions:       input.ColorOptions,
		BasePrice:          input.BasePrice,
		PriceNotes:         input.PriceNotes,
		MinQuantity:        minQuantity,
		ProductionTimeDays: productionTimeDays,
		SetupRequired:      setupRequired,
		DesignIncluded:     designIncluded,
		IsActive:           utils.NewTrue(),
		Featured:           utils.NewFalse(),
		SortOrder:          input.SortOrder,
		CreatedById:        userId,
		Images:             images,
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&productSheet).Error
	if err != nil {
		return nil, err
	}

	return &productSheet, nil
}

func UpdateProductSheet(ctx context.Context, id int, input *NewProductSheet) (*ProductSheet, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	productSheet, err := utils.FetchModel[ProductSheet](ctx, id, "Images")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&productSheet).Updates(map[string]interface{}{
		"Name":               input.Name,
		"ProductType":        input.ProductType,
		"Description":        input.Description,
		"AvailableSizes":     input.AvailableSizes,
		"AvailablePapers":    input.AvailablePapers,
		"AvailableFinishes":  input.AvailableFinishes,
		"ColorOptions":       input.ColorOptions,
		"BasePrice":          input.BasePrice,
		"PriceNotes":         input.PriceNotes,
		"MinQuantity":        input.MinQuantity,
		"ProductionTimeDays": input.ProductionTimeDays,
		"SetupRequired":      input.SetupRequired,
		"DesignIncluded":     input.DesignIncluded,
		"SortOrder":          input.SortOrder,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(input.Images) > 0 {
		images, err := UpsertImages(ctx, tx, input.Images, "product_sheets", id)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		productSheet.Images = images
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return productSheet, nil
}

func DeleteProductSheet(ctx context.Context, id int) (*ProductSheet, error) {

	result, err := utils.FetchModel[ProductSheet](ctx, id, "Images")
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	tx := db.Begin()

	// stored images go with the sheet
	for _, img := range result.Images {
		if err := img.Delete(tx, ctx); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	err = tx.WithContext(ctx).Delete(&result).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetProductSheet(ctx context.Context, id int) (*ProductSheet, error) {
	return utils.FetchModel[ProductSheet](ctx, id, "Images")
}

func GetProductSheets(ctx context.Context,
	productType *ProductType, isActive *bool, featured *bool, search *string) ([]*ProductSheet, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Images")

	if productType != nil && *productType != "" {
		dbCtx = dbCtx.Where("product_type = ?", *productType)
	}
	if isActive != nil {
		dbCtx = dbCtx.Where("is_active = ?", *isActive)
	}
	if featured != nil {
		dbCtx = dbCtx.Where("featured = ?", *featured)
	}
	if search != nil && *search != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*search+"%")
	}

	var productSheets []*ProductSheet
	err := dbCtx.Order("product_type").Order("sort_order").Order("name").
		Limit(config.SearchLimit).Find(&productSheets).Error
	if err != nil {
		return nil, err
	}
	return productSheets, nil
}

func ToggleActiveProductSheet(ctx context.Context, id int, isActive bool) (*ProductSheet, error) {
	return ToggleActiveModel[ProductSheet](ctx, id, isActive)
}

func ToggleFeaturedProductSheet(ctx context.Context, id int, featured bool) (*ProductSheet, error) {

	var result *ProductSheet
	db := config.GetDB()

	// fetch model before updating
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}

	// update db
	tx := db.Begin()
	Tx := tx.WithContext(ctx).Model(&result).
		UpdateColumn("Featured", featured)
	if Tx.Error != nil {
		tx.Rollback()
		return nil, Tx.Error
	}

	var actionType string
	if featured {
		actionType = "*FEATURE*"
	} else {
		actionType = "*UNFEATURE*"
	}

	// create history without hook
	if err := createHistory(tx.WithContext(ctx), actionType, id, Tx.Statement.Table, nil, nil, "toggled featured product sheet"); err != nil {
		tx.Rollback()
		return nil, err
	}

	// clear cache
	if err := RemoveRedisBoth(*result); err != nil {
		return nil, err
	}

	return result, tx.Commit().Error
}

// UploadProductSheetImage stores the image and its thumbnail and attaches
// them to the sheet.
func UploadProductSheetImage(ctx context.Context, id int, file io.Reader, filename string) (*Image, error) {

	if err := utils.ValidateResourceId[ProductSheet](ctx, id); err != nil {
		return nil, err
	}

	imageUrl, thumbnailUrl, err := UploadImage(ctx, file, filename, "product_sheets")
	if err != nil {
		return nil, err
	}

	image := Image{
		ImageUrl:      imageUrl,
		ThumbnailUrl:  thumbnailUrl,
		ReferenceType: "product_sheets",
		ReferenceID:   id,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}
