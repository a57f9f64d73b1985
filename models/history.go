package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type History struct {
	ID            int       `gorm:"primary_key" json:"id"`
	ActionType    string    `gorm:"size:10;not null" json:"action_type" binding:"required"`
	Before        string    `gorm:"type:text" json:"before"`
	After         string    `gorm:"type:text" json:"after"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ReferenceID   int       `gorm:"index" json:"reference_id"`
	ReferenceType string    `gorm:"size:255" json:"reference_type"`
	UserId        int       `gorm:"index;not null" json:"user_id"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	CorrelationId string    `gorm:"size:64" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewHistory struct {
	ActionType    string `json:"action_type" binding:"required"`
	Before        string `json:"before"`
	After         string `json:"after"`
	Description   string `json:"description"`
	ReferenceID   int    `json:"reference_id"`
	ReferenceType string `json:"reference_type"`
	UserId        int    `json:"user_id"`
	UserName      string `json:"user_name"`
}

func describeDocumentCreated(typename string, number string, totalAmount decimal.Decimal) string {
	return fmt.Sprintf("%s %s created for $%v.", typename, number, totalAmount)
}

func createHistory(tx *gorm.DB,
	actionType string,
	referenceId int,
	referenceType string,
	before interface{},
	after interface{},
	description string) (err error) {

	var history History

	b, _ := json.Marshal(before)
	a, _ := json.Marshal(after)

	ctx := tx.Statement.Context
	// get userId, userName from context
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return errors.New("user id is required")
	}
	userName, ok := utils.GetUserNameFromContext(ctx)
	if !ok {
		return errors.New("user name is required")
	}

	history.ActionType = actionType
	history.Before = string(b)
	history.After = string(a)
	history.Description = description
	history.ReferenceID = referenceId
	history.ReferenceType = referenceType
	history.UserId = userId
	history.UserName = userName
	history.CorrelationId = correlationIdFromContextOrNew(ctx)

	err = tx.Create(&history).Error
	return err
}

func SaveHistoryCreate(tx *gorm.DB, id int, obj interface{}, description string) error {
	return createHistory(tx, "CREATE", id, tx.Statement.Table, nil, obj, description)
}

func SaveHistoryUpdate(tx *gorm.DB, id int, currentValue interface{}, description string) error {

	var newValue = tx.Statement.Dest

	return createHistory(tx, "UPDATE", id, tx.Statement.Table, currentValue, newValue, description)
}

func SaveHistoryDelete(tx *gorm.DB, id int, obj interface{}, description string) error {
	return createHistory(tx, "DELETE", id, tx.Statement.Table, obj, nil, description)
}

type HistoriesConnection struct {
	Edges    []*HistoriesEdge `json:"edges"`
	PageInfo *PageInfo        `json:"pageInfo"`
}

type HistoriesEdge Edge[History]

func (obj History) GetId() int {
	return obj.ID
}

func (h History) GetCursor() string {
	return h.CreatedAt.String()
}

func CreateManualHistory(ctx context.Context, input *NewHistory) (*History, error) {
	db := config.GetDB()

	history := History{
		ActionType:    input.ActionType,
		Before:        input.Before,
		After:         input.After,
		Description:   input.Description,
		ReferenceID:   input.ReferenceID,
		ReferenceType: input.ReferenceType,
		UserId:        input.UserId,
		UserName:      input.UserName,
		CorrelationId: correlationIdFromContextOrNew(ctx),
	}

	err := db.WithContext(ctx).Create(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func DeleteHistory(ctx context.Context, id int) (*History, error) {

	db := config.GetDB()
	var result History

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetHistory(ctx context.Context, id int) (*History, error) {

	db := config.GetDB()
	var result History

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetHistories(ctx context.Context, referenceId *int, referenceType *string, userId *int) ([]*History, error) {

	db := config.GetDB()
	var results []*History

	dbCtx := db.WithContext(ctx)
	if referenceId != nil && *referenceId > 0 {
		dbCtx = dbCtx.Where("reference_id = ?", referenceId)
	}
	if referenceType != nil && len(*referenceType) > 0 {
		dbCtx = dbCtx.Where("reference_type = ?", referenceType)
	}
	if userId != nil && *userId > 0 {
		dbCtx = dbCtx.Where("user_id = ?", userId)
	}
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateHistory(ctx context.Context,
	limit *int,
	after *string,
	referenceType *string,
	referenceID *int,
	userID *int,
	actionType *string,
) (*HistoriesConnection, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if referenceType != nil && *referenceType != "" {
		dbCtx = dbCtx.Where("reference_type = ?", *referenceType)
	}
	if referenceID != nil && *referenceID > 0 {
		dbCtx = dbCtx.Where("reference_id = ?", *referenceID)
	}
	if userID != nil && *userID > 0 {
		dbCtx = dbCtx.Where("user_id = ?", *userID)
	}
	if actionType != nil && *actionType != "" {
		dbCtx = dbCtx.Where("action_type = ?", *actionType)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[History](dbCtx, *limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}
	var historysConnection HistoriesConnection
	historysConnection.PageInfo = pageInfo
	for _, edge := range edges {
		historysEdge := HistoriesEdge(edge)
		historysConnection.Edges = append(historysConnection.Edges, &historysEdge)
	}

	return &historysConnection, err
}
