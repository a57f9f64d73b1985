package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PrintEstimate struct {
	ID                      int                 `gorm:"primary_key" json:"id"`
	EstimateNumber          string              `gorm:"size:20;unique" json:"estimate_number"`
	NumberPrefix            string              `gorm:"size:10;not null" json:"number_prefix"`
	SequenceNo              decimal.Decimal     `gorm:"type:decimal(15);not null" json:"sequence_no"`
	Title                   string              `gorm:"size:200" json:"title" binding:"required"`
	CustomerId              int                 `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer                *PrintCustomer      `json:"customer"`
	Description             string              `gorm:"type:text" json:"description"`
	ProjectAddress          string              `gorm:"type:text" json:"project_address"`
	SpecialInstructions     string              `gorm:"type:text" json:"special_instructions"`
	Status                  PrintEstimateStatus `gorm:"type:enum('draft', 'sent', 'approved', 'declined', 'expired', 'in_production', 'completed');default:draft" json:"status"`
	ValidUntil              time.Time           `json:"valid_until"`
	ProductionStartDate     *time.Time          `json:"production_start_date"`
	EstimatedCompletionDate *time.Time          `json:"estimated_completion_date"`
	SubTotal                decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	DiscountPercentage      decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"discount_percentage"`
	DiscountAmount          decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	TaxPercentage           decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"tax_percentage"`
	TaxAmount               decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	TotalAmount             decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaymentTerms            PaymentTerms        `gorm:"type:enum('Net15', 'Net30', 'Net45', 'Net60', 'DueMonthEnd', 'DueNextMonthEnd', 'DueOnReceipt', 'Custom');default:Net30" json:"payment_terms"`
	PaymentTermsCustomDays  int                 `gorm:"default:0" json:"payment_terms_custom_days"`
	PaymentDueDate          *time.Time          `json:"payment_due_date"`
	WarrantyTerms           string              `gorm:"type:text" json:"warranty_terms"`
	DeliveryTerms           string              `gorm:"type:text" json:"delivery_terms"`
	CreatedById             int                 `gorm:"not null" json:"created_by_id"`
	SentAt                  *time.Time          `json:"sent_at"`
	ApprovedAt              *time.Time          `json:"approved_at"`
	Items                   []PrintEstimateItem `gorm:"foreignKey:EstimateId" json:"items"`
	CreatedAt               time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type PrintEstimateItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	EstimateId      int             `gorm:"index;not null" json:"estimate_id"`
	ServiceItemId   int             `gorm:"index" json:"service_item_id"`
	Description     string          `gorm:"type:text" json:"description"`
	Dimensions      string          `gorm:"size:100" json:"dimensions"`
	PaperType       string          `gorm:"size:100" json:"paper_type"`
	FinishType      string          `gorm:"size:100" json:"finish_type"`
	Colors          string          `gorm:"size:100" json:"colors"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	UnitType        string          `gorm:"size:20;default:each" json:"unit_type"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	SetupFee        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"setup_fee"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	ProductionNotes string          `gorm:"type:text" json:"production_notes"`
	RequiresDesign  *bool           `gorm:"not null;default:false" json:"requires_design"`
	DesignTimeHours decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"design_time_hours"`
	SortOrder       int             `gorm:"default:0" json:"sort_order"`
}

type NewPrintEstimate struct {
	Title                   string                 `json:"title" binding:"required"`
	CustomerId              int                    `json:"customer_id" binding:"required"`
	Description             string                 `json:"description"`
	ProjectAddress          string                 `json:"project_address"`
	SpecialInstructions     string                 `json:"special_instructions"`
	ValidUntil              *time.Time             `json:"valid_until"`
	ProductionStartDate     *time.Time             `json:"production_start_date"`
	EstimatedCompletionDate *time.Time             `json:"estimated_completion_date"`
	DiscountPercentage      decimal.Decimal        `json:"discount_percentage"`
	TaxPercentage           decimal.Decimal        `json:"tax_percentage"`
	PaymentTerms            PaymentTerms           `json:"payment_terms"`
	PaymentTermsCustomDays  int                    `json:"payment_terms_custom_days"`
	WarrantyTerms           string                 `json:"warranty_terms"`
	DeliveryTerms           string                 `json:"delivery_terms"`
	Items                   []NewPrintEstimateItem `json:"items"`
}

type NewPrintEstimateItem struct {
	HasId
	ServiceItemId   int             `json:"service_item_id"`
	Description     string          `json:"description"`
	Dimensions      string          `json:"dimensions"`
	PaperType       string          `json:"paper_type"`
	FinishType      string          `json:"finish_type"`
	Colors          string          `json:"colors"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitType        string          `json:"unit_type"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SetupFee        decimal.Decimal `json:"setup_fee"`
	ProductionNotes string          `json:"production_notes"`
	RequiresDesign  *bool           `json:"requires_design"`
	DesignTimeHours decimal.Decimal `json:"design_time_hours"`
	SortOrder       int             `json:"sort_order"`
}

type PrintEstimatesEdge Edge[PrintEstimate]

type PrintEstimatesConnection struct {
	PageInfo *PageInfo             `json:"pageInfo"`
	Edges    []*PrintEstimatesEdge `json:"edges"`
}

func (obj PrintEstimate) GetId() int {
	return obj.ID
}

// implements Node
func (obj PrintEstimate) GetCursor() string {
	return obj.CreatedAt.String()
}

// implements ModelChangeLocker.
// approved estimates and beyond are immutable when the strict flag is on, duplicate and re-issue instead
func (obj PrintEstimate) CheckChangeLock(ctx context.Context) error {
	if config.StrictDocImmutability() {
		switch obj.Status {
		case PrintEstimateStatusApproved, PrintEstimateStatusInProduction, PrintEstimateStatusCompleted:
			return errors.New("cannot edit an approved print estimate; duplicate it to re-issue")
		}
	}
	return nil
}

func (obj *PrintEstimate) IsExpired(now time.Time) bool {
	return now.After(obj.ValidUntil)
}

func (item PrintEstimateItem) GetId() int {
	return item.ID
}

func (item PrintEstimateItem) fillable() map[string]interface{} {
	return map[string]interface{}{
		"ServiceItemId":   item.ServiceItemId,
		"Description":     item.Description,
		"Dimensions":      item.Dimensions,
		"PaperType":       item.PaperType,
		"FinishType":      item.FinishType,
		"Colors":          item.Colors,
		"Quantity":        item.Quantity,
		"UnitType":        item.UnitType,
		"UnitPrice":       item.UnitPrice,
		"SetupFee":        item.SetupFee,
		"TotalPrice":      item.TotalPrice,
		"ProductionNotes": item.ProductionNotes,
		"RequiresDesign":  item.RequiresDesign,
		"DesignTimeHours": item.DesignTimeHours,
		"SortOrder":       item.SortOrder,
	}
}

// create if item id is zero or does not exist, update if it does, remove excluded ids
func upsertPrintEstimateItems(ctx context.Context, tx *gorm.DB, input []PrintEstimateItem, estimateId int) error {
	return ReplaceAssociation(ctx, tx, input, "estimate_id = ?", estimateId)
}

func (item *NewPrintEstimateItem) validate(ctx context.Context) error {
	if err := utils.ValidateQuantity(item.Quantity); err != nil {
		return err
	}
	if err := utils.ValidateUnitPrice(item.UnitPrice); err != nil {
		return err
	}
	if err := utils.ValidateSetupFee(item.SetupFee); err != nil {
		return err
	}
	if item.DesignTimeHours.IsNegative() {
		return errors.New("design time hours must not be negative")
	}
	if item.ServiceItemId > 0 {
		if err := utils.ValidateResourceId[PrintServiceItem](ctx, item.ServiceItemId); err != nil {
			return errors.New("print service item not found")
		}
	}
	return nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPrintEstimate) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[PrintEstimate](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[PrintCustomer](ctx, input.CustomerId); err != nil {
		return errors.New("print customer not found")
	}
	if err := utils.ValidatePercentage(input.DiscountPercentage, "discount percentage"); err != nil {
		return err
	}
	if err := utils.ValidatePercentage(input.TaxPercentage, "tax percentage"); err != nil {
		return err
	}
	if input.PaymentTerms != "" {
		if _, err := ParsePaymentTerms(string(input.PaymentTerms)); err != nil {
			return err
		}
	}
	for _, item := range input.Items {
		if err := item.validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// map item inputs to rows with computed line totals.
// description, unit type, tier price and setup fee fall back to the
// referenced catalog item when left blank or zero
func mapNewPrintEstimateItems(ctx context.Context, input []NewPrintEstimateItem, estimateId int) ([]PrintEstimateItem, []decimal.Decimal, error) {

	var items []PrintEstimateItem
	var lineTotals []decimal.Decimal

	for _, item := range input {

		description := item.Description
		unitType := item.UnitType
		unitPrice := item.UnitPrice
		setupFee := item.SetupFee

		if item.ServiceItemId > 0 &&
			(description == "" || unitType == "" || unitPrice.IsZero() || setupFee.IsZero()) {
			serviceItem, err := GetResource[PrintServiceItem](ctx, item.ServiceItemId)
			if err != nil {
				return nil, nil, errors.New("print service item not found")
			}
			if description == "" {
				description = serviceItem.Name
			}
			if unitType == "" {
				unitType = string(serviceItem.UnitType)
			}
			if unitPrice.IsZero() {
				unitPrice = serviceItem.PriceForQuantity(int(item.Quantity.IntPart()))
			}
			if setupFee.IsZero() {
				setupFee = serviceItem.SetupFee
			}
		}
		if unitType == "" {
			unitType = "each"
		}
		requiresDesign := item.RequiresDesign
		if requiresDesign == nil {
			requiresDesign = utils.NewFalse()
		}

		totalPrice := utils.CalculateLineTotal(item.Quantity, unitPrice, setupFee)
		lineTotals = append(lineTotals, totalPrice)

		items = append(items, PrintEstimateItem{
			ID:              item.ID,
			EstimateId:      estimateId,
			ServiceItemId:   item.ServiceItemId,
			Description:     description,
			Dimensions:      item.Dimensions,
			PaperType:       item.PaperType,
			FinishType:      item.FinishType,
			Colors:          item.Colors,
			Quantity:        item.Quantity,
			UnitType:        unitType,
			UnitPrice:       unitPrice,
			SetupFee:        setupFee,
			TotalPrice:      totalPrice,
			ProductionNotes: item.ProductionNotes,
			RequiresDesign:  requiresDesign,
			DesignTimeHours: item.DesignTimeHours,
			SortOrder:       item.SortOrder,
		})
	}
	return items, lineTotals, nil
}

func CreatePrintEstimate(ctx context.Context, input *NewPrintEstimate) (*PrintEstimate, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	items, lineTotals, err := mapNewPrintEstimateItems(ctx, input.Items, 0)
	if err != nil {
		return nil, err
	}
	totals := utils.CalculateDocumentTotals(lineTotals, input.DiscountPercentage, input.TaxPercentage)

	validUntil := time.Now().AddDate(0, 0, 30)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}
	paymentTerms := input.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = PaymentTermsNet30
	}

	printEstimate := PrintEstimate{
		Title:                   input.Title,
		CustomerId:              input.CustomerId,
		Description:             input.Description,
		ProjectAddress:          input.ProjectAddress,
		SpecialInstructions:     input.SpecialInstructions,
		Status:                  PrintEstimateStatusDraft,
		ValidUntil:              validUntil,
		ProductionStartDate:     input.ProductionStartDate,
		EstimatedCompletionDate: input.EstimatedCompletionDate,
		SubTotal:                totals.SubTotal,
		DiscountPercentage:      input.DiscountPercentage,
		DiscountAmount:          totals.DiscountAmount,
		TaxPercentage:           input.TaxPercentage,
		TaxAmount:               totals.TaxAmount,
		TotalAmount:             totals.TotalAmount,
		PaymentTerms:            paymentTerms,
		PaymentTermsCustomDays:  input.PaymentTermsCustomDays,
		WarrantyTerms:           input.WarrantyTerms,
		DeliveryTerms:           input.DeliveryTerms,
		CreatedById:             userId,
		Items:                   items,
	}

	db := config.GetDB()
	tx := db.Begin()

	// estimate numbers restart each month, the prefix scopes the sequence
	prefix := time.Now().Format("200601")
	seqNo, err := utils.GetScopedSequence[PrintEstimate](ctx, prefix)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	printEstimate.SequenceNo = decimal.NewFromInt(seqNo)
	printEstimate.NumberPrefix = prefix
	printEstimate.EstimateNumber = fmt.Sprintf("PE%s%04d", prefix, seqNo)

	err = tx.WithContext(ctx).Create(&printEstimate).Error
	if err != nil {
		tx.Rollback()
		if isDuplicateKeyErr(err) {
			return nil, ErrorNumberConflict
		}
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &printEstimate, nil
}

func UpdatePrintEstimate(ctx context.Context, id int, input *NewPrintEstimate) (*PrintEstimate, error) {

	printEstimate, err := utils.FetchModelForChange[PrintEstimate](ctx, id, "Items")
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	items, lineTotals, err := mapNewPrintEstimateItems(ctx, input.Items, id)
	if err != nil {
		return nil, err
	}
	totals := utils.CalculateDocumentTotals(lineTotals, input.DiscountPercentage, input.TaxPercentage)

	validUntil := printEstimate.ValidUntil
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}
	paymentTerms := input.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = printEstimate.PaymentTerms
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&printEstimate).Updates(map[string]interface{}{
		"Title":                   input.Title,
		"CustomerId":              input.CustomerId,
		"Description":             input.Description,
		"ProjectAddress":          input.ProjectAddress,
		"SpecialInstructions":     input.SpecialInstructions,
		"ValidUntil":              validUntil,
		"ProductionStartDate":     input.ProductionStartDate,
		"EstimatedCompletionDate": input.EstimatedCompletionDate,
		"SubTotal":                totals.SubTotal,
		"DiscountPercentage":      input.DiscountPercentage,
		"DiscountAmount":          totals.DiscountAmount,
		"TaxPercentage":           input.TaxPercentage,
		"TaxAmount":               totals.TaxAmount,
		"TotalAmount":             totals.TotalAmount,
		"PaymentTerms":            paymentTerms,
		"PaymentTermsCustomDays":  input.PaymentTermsCustomDays,
		"WarrantyTerms":           input.WarrantyTerms,
		"DeliveryTerms":           input.DeliveryTerms,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := upsertPrintEstimateItems(ctx, tx, items, id); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	printEstimate.Items = items
	return printEstimate, nil
}

// full recompute of the header totals from the item rows, inside the caller's transaction
func recalculatePrintEstimateTx(ctx context.Context, tx *gorm.DB, id int) error {

	var header PrintEstimate
	if err := tx.WithContext(ctx).First(&header, id).Error; err != nil {
		return err
	}
	var items []PrintEstimateItem
	if err := tx.WithContext(ctx).
		Where("estimate_id = ?", id).Order("sort_order").Find(&items).Error; err != nil {
		return err
	}

	var lineTotals []decimal.Decimal
	for _, item := range items {
		lineTotals = append(lineTotals, item.TotalPrice)
	}
	totals := utils.CalculateDocumentTotals(lineTotals, header.DiscountPercentage, header.TaxPercentage)

	return tx.WithContext(ctx).Model(&header).Updates(map[string]interface{}{
		"SubTotal":       totals.SubTotal,
		"DiscountAmount": totals.DiscountAmount,
		"TaxAmount":      totals.TaxAmount,
		"TotalAmount":    totals.TotalAmount,
	}).Error
}

// RecalculatePrintEstimate recomputes the header totals from the items on record.
// idempotent, full recompute every time
func RecalculatePrintEstimate(ctx context.Context, id int) (*PrintEstimate, error) {

	if _, err := utils.FetchModel[PrintEstimate](ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := recalculatePrintEstimateTx(ctx, tx, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[PrintEstimate](ctx, id, "Items")
}

// AddPrintEstimateItem appends one line and recomputes the header in the same transaction.
func AddPrintEstimateItem(ctx context.Context, estimateId int, input *NewPrintEstimateItem) (*PrintEstimate, error) {

	if _, err := utils.FetchModelForChange[PrintEstimate](ctx, estimateId); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	// always a fresh row, whatever id came in
	line := *input
	line.ID = 0
	items, _, err := mapNewPrintEstimateItems(ctx, []NewPrintEstimateItem{line}, estimateId)
	if err != nil {
		return nil, err
	}
	item := items[0]

	db := config.GetDB()
	if item.SortOrder == 0 {
		var maxSort int
		if err := db.WithContext(ctx).Model(&PrintEstimateItem{}).
			Where("estimate_id = ?", estimateId).
			Select("COALESCE(MAX(sort_order), 0)").Scan(&maxSort).Error; err != nil {
			return nil, err
		}
		item.SortOrder = maxSort + 1
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := recalculatePrintEstimateTx(ctx, tx, estimateId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[PrintEstimate](ctx, estimateId, "Items")
}

// UpdatePrintEstimateItem rewrites one line and recomputes the header in the same transaction.
func UpdatePrintEstimateItem(ctx context.Context, id int, input *NewPrintEstimateItem) (*PrintEstimate, error) {

	item, err := utils.FetchModel[PrintEstimateItem](ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.FetchModelForChange[PrintEstimate](ctx, item.EstimateId); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	line := *input
	line.ID = id
	if line.SortOrder == 0 {
		line.SortOrder = item.SortOrder
	}
	mapped, _, err := mapNewPrintEstimateItems(ctx, []NewPrintEstimateItem{line}, item.EstimateId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(&item).Updates(mapped[0].fillable()).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := recalculatePrintEstimateTx(ctx, tx, item.EstimateId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[PrintEstimate](ctx, item.EstimateId, "Items")
}

// DeletePrintEstimateItem removes one line and recomputes the header in the same transaction.
func DeletePrintEstimateItem(ctx context.Context, id int) (*PrintEstimate, error) {

	item, err := utils.FetchModel[PrintEstimateItem](ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.FetchModelForChange[PrintEstimate](ctx, item.EstimateId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := recalculatePrintEstimateTx(ctx, tx, item.EstimateId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[PrintEstimate](ctx, item.EstimateId, "Items")
}

var printEstimateStatusFlow = map[PrintEstimateStatus][]PrintEstimateStatus{
	PrintEstimateStatusDraft: {PrintEstimateStatusSent},
	PrintEstimateStatusSent:  {PrintEstimateStatusApproved, PrintEstimateStatusDeclined, PrintEstimateStatusExpired},
	// re-sending an expired estimate re-opens it, declined and completed are terminal
	PrintEstimateStatusExpired:      {PrintEstimateStatusSent},
	PrintEstimateStatusApproved:     {PrintEstimateStatusInProduction},
	PrintEstimateStatusInProduction: {PrintEstimateStatusCompleted},
}

func canTransitionPrintEstimate(from PrintEstimateStatus, to PrintEstimateStatus) bool {
	for _, allowed := range printEstimateStatusFlow[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func UpdatePrintEstimateStatus(ctx context.Context, id int, status PrintEstimateStatus) (*PrintEstimate, error) {

	if _, err := ParsePrintEstimateStatus(string(status)); err != nil {
		return nil, err
	}

	printEstimate, err := utils.FetchModel[PrintEstimate](ctx, id)
	if err != nil {
		return nil, err
	}

	if printEstimate.Status == status {
		return printEstimate, nil
	}
	if !canTransitionPrintEstimate(printEstimate.Status, status) {
		return nil, fmt.Errorf("cannot change estimate status from %s to %s", printEstimate.Status, status)
	}

	updates := map[string]interface{}{
		"Status": status,
	}
	// first entry to sent stamps the timestamp, later re-sends keep it
	if status == PrintEstimateStatusSent && printEstimate.SentAt == nil {
		updates["SentAt"] = time.Now()
	}
	// approval starts the payment clock
	if status == PrintEstimateStatusApproved && printEstimate.ApprovedAt == nil {
		now := time.Now()
		updates["ApprovedAt"] = now
		updates["PaymentDueDate"] = calculateDueDate(now, printEstimate.PaymentTerms, printEstimate.PaymentTermsCustomDays)
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(&printEstimate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return printEstimate, nil
}

func DeletePrintEstimate(ctx context.Context, id int) (*PrintEstimate, error) {

	printEstimate, err := utils.FetchModelForChange[PrintEstimate](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Where("estimate_id = ?", id).Delete(&PrintEstimateItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&printEstimate).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return printEstimate, nil
}

// DuplicatePrintEstimate copies the header and items into a fresh draft with a new number.
// production dates and approval stamps do not carry over
func DuplicatePrintEstimate(ctx context.Context, id int) (*PrintEstimate, error) {

	source, err := utils.FetchModel[PrintEstimate](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	var items []PrintEstimateItem
	var lineTotals []decimal.Decimal
	for _, item := range source.Items {
		items = append(items, PrintEstimateItem{
			ServiceItemId:   item.ServiceItemId,
			Description:     item.Description,
			Dimensions:      item.Dimensions,
			PaperType:       item.PaperType,
			FinishType:      item.FinishType,
			Colors:          item.Colors,
			Quantity:        item.Quantity,
			UnitType:        item.UnitType,
			UnitPrice:       item.UnitPrice,
			SetupFee:        item.SetupFee,
			TotalPrice:      item.TotalPrice,
			ProductionNotes: item.ProductionNotes,
			RequiresDesign:  item.RequiresDesign,
			DesignTimeHours: item.DesignTimeHours,
			SortOrder:       item.SortOrder,
		})
		lineTotals = append(lineTotals, item.TotalPrice)
	}
	totals := utils.CalculateDocumentTotals(lineTotals, source.DiscountPercentage, source.TaxPercentage)

	printEstimate := PrintEstimate{
		Title:                  source.Title,
		CustomerId:             source.CustomerId,
		Description:            source.Description,
		ProjectAddress:         source.ProjectAddress,
		SpecialInstructions:    source.SpecialInstructions,
		Status:                 PrintEstimateStatusDraft,
		ValidUntil:             time.Now().AddDate(0, 0, 30),
		SubTotal:               totals.SubTotal,
		DiscountPercentage:     source.DiscountPercentage,
		DiscountAmount:         totals.DiscountAmount,
		TaxPercentage:          source.TaxPercentage,
		TaxAmount:              totals.TaxAmount,
		TotalAmount:            totals.TotalAmount,
		PaymentTerms:           source.PaymentTerms,
		PaymentTermsCustomDays: source.PaymentTermsCustomDays,
		WarrantyTerms:          source.WarrantyTerms,
		DeliveryTerms:          source.DeliveryTerms,
		CreatedById:            userId,
		Items:                  items,
	}

	db := config.GetDB()
	tx := db.Begin()

	prefix := time.Now().Format("200601")
	seqNo, err := utils.GetScopedSequence[PrintEstimate](ctx, prefix)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	printEstimate.SequenceNo = decimal.NewFromInt(seqNo)
	printEstimate.NumberPrefix = prefix
	printEstimate.EstimateNumber = fmt.Sprintf("PE%s%04d", prefix, seqNo)

	err = tx.WithContext(ctx).Create(&printEstimate).Error
	if err != nil {
		tx.Rollback()
		if isDuplicateKeyErr(err) {
			return nil, ErrorNumberConflict
		}
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &printEstimate, nil
}

// MarkExpiredPrintEstimates expires outstanding estimates past their validity date.
// only sent estimates are swept, drafts just go stale
func MarkExpiredPrintEstimates(ctx context.Context) (int64, error) {

	// no user on the sweep, the audit hooks stay out of it
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&PrintEstimate{}).
		Session(&gorm.Session{SkipHooks: true}).
		Where("status = ? AND valid_until < ?", PrintEstimateStatusSent, time.Now()).
		Update("Status", PrintEstimateStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func GetPrintEstimate(ctx context.Context, id int) (*PrintEstimate, error) {
	return utils.FetchModel[PrintEstimate](ctx, id, "Customer", "Items")
}

func GetPrintEstimates(ctx context.Context,
	status *PrintEstimateStatus, customerId *int, search *string) ([]*PrintEstimate, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Customer")

	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	if search != nil && *search != "" {
		dbCtx = dbCtx.Where(
			db.Where("estimate_number LIKE ?", "%"+*search+"%").
				Or("title LIKE ?", "%"+*search+"%"))
	}

	var printEstimates []*PrintEstimate
	err := dbCtx.Order("created_at DESC").Limit(config.SearchLimit).Find(&printEstimates).Error
	if err != nil {
		return nil, err
	}
	return printEstimates, nil
}

func PaginatePrintEstimate(ctx context.Context,
	limit int, after *string) (*PrintEstimatesConnection, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Customer")

	edges, pageInfo, err := FetchPageCompositeCursor[PrintEstimate](dbCtx, limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}

	var printEstimateConnection PrintEstimatesConnection
	printEstimateConnection.PageInfo = pageInfo
	for _, edge := range edges {
		printEstimateEdge := PrintEstimatesEdge(edge)
		printEstimateConnection.Edges = append(printEstimateConnection.Edges, &printEstimateEdge)
	}
	return &printEstimateConnection, nil
}
