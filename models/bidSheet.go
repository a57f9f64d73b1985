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

type BidSheet struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	BidNumber          string          `gorm:"size:20;unique" json:"bid_number"`
	SequenceNo         decimal.Decimal `gorm:"type:decimal(15);not null" json:"sequence_no"`
	Title              string          `gorm:"size:200" json:"title" binding:"required"`
	CustomerId         int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer           *Customer       `json:"customer"`
	ProjectDescription string          `gorm:"type:text" json:"project_description"`
	ProjectAddress     string          `gorm:"type:text" json:"project_address"`
	Status             BidSheetStatus  `gorm:"type:enum('draft', 'sent', 'accepted', 'rejected', 'expired');default:draft" json:"status"`
	ValidUntil         time.Time       `json:"valid_until"`
	SubTotal           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	TaxPercentage      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_percentage"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CustomTerms        string          `gorm:"type:text" json:"custom_terms"`
	CustomExclusions   string          `gorm:"type:text" json:"custom_exclusions"`
	Notes              string          `gorm:"type:text" json:"notes"`
	CreatedById        int             `gorm:"not null" json:"created_by_id"`
	SentAt             *time.Time      `json:"sent_at"`
	Items              []BidItem       `gorm:"foreignKey:BidSheetId" json:"items"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type BidItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BidSheetId    int             `gorm:"index;not null" json:"bid_sheet_id"`
	ServiceItemId int             `gorm:"index" json:"service_item_id"`
	Description   string          `gorm:"size:500" json:"description"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	UnitType      string          `gorm:"size:50;default:each" json:"unit_type"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	SortOrder     int             `gorm:"default:0" json:"sort_order"`
}

type NewBidSheet struct {
	Title              string          `json:"title" binding:"required"`
	CustomerId         int             `json:"customer_id" binding:"required"`
	ProjectDescription string          `json:"project_description"`
	ProjectAddress     string          `json:"project_address"`
	ValidUntil         *time.Time      `json:"valid_until"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	CustomTerms        string          `json:"custom_terms"`
	CustomExclusions   string          `json:"custom_exclusions"`
	Notes              string          `json:"notes"`
	Items              []NewBidItem    `json:"items"`
}

type NewBidItem struct {
	HasId
	ServiceItemId int             `json:"service_item_id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitType      string          `json:"unit_type"`
	SortOrder     int             `json:"sort_order"`
}

type BidSheetsEdge Edge[BidSheet]

type BidSheetsConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*BidSheetsEdge `json:"edges"`
}

func (obj BidSheet) GetId() int {
	return obj.ID
}

// implements Node
func (obj BidSheet) GetCursor() string {
	return obj.CreatedAt.String()
}

// implements ModelChangeLocker.
// accepted bids are immutable when the strict flag is on, duplicate and re-issue instead
func (obj BidSheet) CheckChangeLock(ctx context.Context) error {
	if config.StrictDocImmutability() && obj.Status == BidSheetStatusAccepted {
		return errors.New("cannot edit an accepted bid sheet; duplicate it to re-issue")
	}
	return nil
}

func (obj *BidSheet) IsExpired(now time.Time) bool {
	return now.After(obj.ValidUntil)
}

func (item BidItem) GetId() int {
	return item.ID
}

func (item BidItem) fillable() map[string]interface{} {
	return map[string]interface{}{
		"ServiceItemId": item.ServiceItemId,
		"Description":   item.Description,
		"Quantity":      item.Quantity,
		"UnitPrice":     item.UnitPrice,
		"UnitType":      item.UnitType,
		"TotalPrice":    item.TotalPrice,
		"SortOrder":     item.SortOrder,
	}
}

// create if item id is zero or does not exist, update if it does, remove excluded ids
func upsertBidItems(ctx context.Context, tx *gorm.DB, input []BidItem, bidSheetId int) error {
	return ReplaceAssociation(ctx, tx, input, "bid_sheet_id = ?", bidSheetId)
}

func (item *NewBidItem) validate(ctx context.Context) error {
	if err := utils.ValidateQuantity(item.Quantity); err != nil {
		return err
	}
	if err := utils.ValidateUnitPrice(item.UnitPrice); err != nil {
		return err
	}
	if item.ServiceItemId > 0 {
		if err := utils.ValidateResourceId[ServiceItem](ctx, item.ServiceItemId); err != nil {
			return errors.New("service item not found")
		}
	}
	return nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewBidSheet) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[BidSheet](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidatePercentage(input.DiscountPercentage, "discount percentage"); err != nil {
		return err
	}
	if err := utils.ValidatePercentage(input.TaxPercentage, "tax percentage"); err != nil {
		return err
	}
	for _, item := range input.Items {
		if err := item.validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// map item inputs to rows with computed line totals.
// a blank description falls back to the referenced service item's name
func mapNewBidItems(ctx context.Context, input []NewBidItem, bidSheetId int) ([]BidItem, []decimal.Decimal, error) {

	var items []BidItem
	var lineTotals []decimal.Decimal

	for _, item := range input {

		description := item.Description
		unitType := item.UnitType
		if item.ServiceItemId > 0 && (description == "" || unitType == "") {
			serviceItem, err := GetResource[ServiceItem](ctx, item.ServiceItemId)
			if err != nil {
				return nil, nil, errors.New("service item not found")
			}
			if description == "" {
				description = serviceItem.Name
			}
			if unitType == "" {
				unitType = serviceItem.UnitType
			}
		}
		if unitType == "" {
			unitType = "each"
		}

		totalPrice := utils.CalculateLineTotal(item.Quantity, item.UnitPrice, decimal.Zero)
		lineTotals = append(lineTotals, totalPrice)

		items = append(items, BidItem{
			ID:            item.ID,
			BidSheetId:    bidSheetId,
			ServiceItemId: item.ServiceItemId,
			Description:   description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			UnitType:      unitType,
			TotalPrice:    totalPrice,
			SortOrder:     item.SortOrder,
		})
	}
	return items, lineTotals, nil
}

func CreateBidSheet(ctx context.Context, input *NewBidSheet) (*BidSheet, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	items, lineTotals, err := mapNewBidItems(ctx, input.Items, 0)
	if err != nil {
		return nil, err
	}
	totals := utils.CalculateDocumentTotals(lineTotals, input.DiscountPercentage, input.TaxPercentage)

	validUntil := time.Now().AddDate(0, 0, 30)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	bidSheet := BidSheet{
		Title:              input.Title,
		CustomerId:         input.CustomerId,
		ProjectDescription: input.ProjectDescription,
		ProjectAddress:     input.ProjectAddress,
		Status:             BidSheetStatusDraft,
		ValidUntil:         validUntil,
		SubTotal:           totals.SubTotal,
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     totals.DiscountAmount,
		TaxPercentage:      input.TaxPercentage,
		TaxAmount:          totals.TaxAmount,
		TotalAmount:        totals.TotalAmount,
		CustomTerms:        input.CustomTerms,
		CustomExclusions:   input.CustomExclusions,
		Notes:              input.Notes,
		CreatedById:        userId,
		Items:              items,
	}

	db := config.GetDB()
	tx := db.Begin()

	seqNo, err := utils.GetSequence[BidSheet](ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	bidSheet.SequenceNo = decimal.NewFromInt(seqNo)
	bidSheet.BidNumber = fmt.Sprintf("BID-%06d", seqNo)

	err = tx.WithContext(ctx).Create(&bidSheet).Error
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

	return &bidSheet, nil
}

func UpdateBidSheet(ctx context.Context, id int, input *NewBidSheet) (*BidSheet, error) {

	bidSheet, err := utils.FetchModelForChange[BidSheet](ctx, id, "Items")
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	items, lineTotals, err := mapNewBidItems(ctx, input.Items, id)
	if err != nil {
		return nil, err
	}
	totals := utils.CalculateDocumentTotals(lineTotals, input.DiscountPercentage, input.TaxPercentage)

	validUntil := bidSheet.ValidUntil
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&bidSheet).Updates(map[string]interface{}{
		"Title":              input.Title,
		"CustomerId":         input.CustomerId,
		"ProjectDescription": input.ProjectDescription,
		"ProjectAddress":     input.ProjectAddress,
		"ValidUntil":         validUntil,
		"SubTotal":           totals.SubTotal,
		"DiscountPercentage": input.DiscountPercentage,
		"DiscountAmount":     totals.DiscountAmount,
		"TaxPercentage":      input.TaxPercentage,
		"TaxAmount":          totals.TaxAmount,
		"TotalAmount":        totals.TotalAmount,
		"CustomTerms":        input.CustomTerms,
		"CustomExclusions":   input.CustomExclusions,
		"Notes":              input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := upsertBidItems(ctx, tx, items, id); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	bidSheet.Items = items
	return bidSheet, nil
}

// full recompute of the header totals from the item rows, inside the caller's transaction
func recalculateBidSheetTx(ctx context.Context, tx *gorm.DB, id int) error {

	var header BidSheet
	if err := tx.WithContext(ctx).First(&header, id).Error; err != nil {
		return err
	}
	var items []BidItem
	if err := tx.WithContext(ctx).
		Where("bid_sheet_id = ?", id).Order("sort_order").Find(&items).Error; err != nil {
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

// RecalculateBidSheet recomputes the header totals from the items on record.
// idempotent, full recompute every time
func RecalculateBidSheet(ctx context.Context, id int) (*BidSheet, error) {

	if _, err := utils.FetchModel[BidSheet](ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := recalculateBidSheetTx(ctx, tx, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[BidSheet](ctx, id, "Items")
}

// AddBidItem appends one line and recomputes the header in the same transaction.
func AddBidItem(ctx context.Context, bidSheetId int, input *NewBidItem) (*BidSheet, error) {

	if _, err := utils.FetchModelForChange[BidSheet](ctx, bidSheetId); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	// always a fresh row, whatever id came in
	line := *input
	line.ID = 0
	items, _, err := mapNewBidItems(ctx, []NewBidItem{line}, bidSheetId)
	if err != nil {
		return nil, err
	}
	item := items[0]

	db := config.GetDB()
	if item.SortOrder == 0 {
		var maxSort int
		if err := db.WithContext(ctx).Model(&BidItem{}).
			Where("bid_sheet_id = ?", bidSheetId).
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
	if err := recalculateBidSheetTx(ctx, tx, bidSheetId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[BidSheet](ctx, bidSheetId, "Items")
}

// UpdateBidItem rewrites one line and recomputes the header in the same transaction.
func UpdateBidItem(ctx context.Context, id int, input *NewBidItem) (*BidSheet, error) {

	item, err := utils.FetchModel[BidItem](ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.FetchModelForChange[BidSheet](ctx, item.BidSheetId); err != nil {
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
	mapped, _, err := mapNewBidItems(ctx, []NewBidItem{line}, item.BidSheetId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(&item).Updates(mapped[0].fillable()).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := recalculateBidSheetTx(ctx, tx, item.BidSheetId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[BidSheet](ctx, item.BidSheetId, "Items")
}

// DeleteBidItem removes one line and recomputes the header in the same transaction.
func DeleteBidItem(ctx context.Context, id int) (*BidSheet, error) {

	item, err := utils.FetchModel[BidItem](ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.FetchModelForChange[BidSheet](ctx, item.BidSheetId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := recalculateBidSheetTx(ctx, tx, item.BidSheetId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[BidSheet](ctx, item.BidSheetId, "Items")
}

var bidSheetStatusFlow = map[BidSheetStatus][]BidSheetStatus{
	BidSheetStatusDraft: {BidSheetStatusSent},
	BidSheetStatusSent:  {BidSheetStatusAccepted, BidSheetStatusRejected, BidSheetStatusExpired},
	// re-sending an expired bid re-opens it, accepted/rejected are terminal
	BidSheetStatusExpired: {BidSheetStatusSent},
}

func canTransitionBidSheet(from BidSheetStatus, to BidSheetStatus) bool {
	for _, allowed := range bidSheetStatusFlow[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func UpdateBidSheetStatus(ctx context.Context, id int, status BidSheetStatus) (*BidSheet, error) {

	if _, err := ParseBidSheetStatus(string(status)); err != nil {
		return nil, err
	}

	bidSheet, err := utils.FetchModel[BidSheet](ctx, id)
	if err != nil {
		return nil, err
	}

	if bidSheet.Status == status {
		return bidSheet, nil
	}
	if !canTransitionBidSheet(bidSheet.Status, status) {
		return nil, fmt.Errorf("cannot change bid status from %s to %s", bidSheet.Status, status)
	}

	updates := map[string]interface{}{
		"Status": status,
	}
	// first entry to sent stamps the timestamp, later re-sends keep it
	if status == BidSheetStatusSent && bidSheet.SentAt == nil {
		updates["SentAt"] = time.Now()
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(&bidSheet).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return bidSheet, nil
}

func DeleteBidSheet(ctx context.Context, id int) (*BidSheet, error) {

	bidSheet, err := utils.FetchModelForChange[BidSheet](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	// items and email logs go with the bid
	if err := tx.WithContext(ctx).Where("bid_sheet_id = ?", id).Delete(&BidItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("bid_sheet_id = ?", id).Delete(&BidEmailLog{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&bidSheet).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return bidSheet, nil
}

// DuplicateBidSheet copies the header and items into a fresh draft with a new number.
func DuplicateBidSheet(ctx context.Context, id int) (*BidSheet, error) {

	source, err := utils.FetchModel[BidSheet](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	var items []BidItem
	var lineTotals []decimal.Decimal
	for _, item := range source.Items {
		items = append(items, BidItem{
			ServiceItemId: item.ServiceItemId,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			UnitType:      item.UnitType,
			TotalPrice:    item.TotalPrice,
			SortOrder:     item.SortOrder,
		})
		lineTotals = append(lineTotals, item.TotalPrice)
	}
	totals := utils.CalculateDocumentTotals(lineTotals, source.DiscountPercentage, source.TaxPercentage)

	bidSheet := BidSheet{
		Title:              source.Title,
		CustomerId:         source.CustomerId,
		ProjectDescription: source.ProjectDescription,
		ProjectAddress:     source.ProjectAddress,
		Status:             BidSheetStatusDraft,
		ValidUntil:         time.Now().AddDate(0, 0, 30),
		SubTotal:           totals.SubTotal,
		DiscountPercentage: source.DiscountPercentage,
		DiscountAmount:     totals.DiscountAmount,
		TaxPercentage:      source.TaxPercentage,
		TaxAmount:          totals.TaxAmount,
		TotalAmount:        totals.TotalAmount,
		CustomTerms:        source.CustomTerms,
		CustomExclusions:   source.CustomExclusions,
		Notes:              source.Notes,
		CreatedById:        userId,
		Items:              items,
	}

	db := config.GetDB()
	tx := db.Begin()

	seqNo, err := utils.GetSequence[BidSheet](ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	bidSheet.SequenceNo = decimal.NewFromInt(seqNo)
	bidSheet.BidNumber = fmt.Sprintf("BID-%06d", seqNo)

	err = tx.WithContext(ctx).Create(&bidSheet).Error
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
	return &bidSheet, nil
}

// MarkExpiredBidSheets expires outstanding bids past their validity date.
// only sent bids are swept, drafts just go stale
func MarkExpiredBidSheets(ctx context.Context) (int64, error) {

	// no user on the sweep, the audit hooks stay out of it
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&BidSheet{}).
		Session(&gorm.Session{SkipHooks: true}).
		Where("status = ? AND valid_until < ?", BidSheetStatusSent, time.Now()).
		Update("Status", BidSheetStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func GetBidSheet(ctx context.Context, id int) (*BidSheet, error) {
	return utils.FetchModel[BidSheet](ctx, id, "Customer", "Items")
}

func GetBidSheets(ctx context.Context,
	status *BidSheetStatus, customerId *int, search *string) ([]*BidSheet, error) {

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
			db.Where("bid_number LIKE ?", "%"+*search+"%").
				Or("title LIKE ?", "%"+*search+"%"))
	}

	var bidSheets []*BidSheet
	err := dbCtx.Order("created_at DESC").Limit(config.SearchLimit).Find(&bidSheets).Error
	if err != nil {
		return nil, err
	}
	return bidSheets, nil
}

func PaginateBidSheet(ctx context.Context,
	limit int, after *string) (*BidSheetsConnection, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Customer")

	edges, pageInfo, err := FetchPageCompositeCursor[BidSheet](dbCtx, limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}

	var bidSheetConnection BidSheetsConnection
	bidSheetConnection.PageInfo = pageInfo
	for _, edge := range edges {
		bidSheetEdge := BidSheetsEdge(edge)
		bidSheetConnection.Edges = append(bidSheetConnection.Edges, &bidSheetEdge)
	}
	return &bidSheetConnection, nil
}
