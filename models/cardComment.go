package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardComment doubles as the card's activity log. Board moves, assignments
// and time logs land here next to the human comments, told apart by type.
type CardComment struct {
	ID          int              `gorm:"primary_key" json:"id"`
	CardId      int              `gorm:"index;not null" json:"card_id" binding:"required"`
	UserId      int              `json:"user_id"`
	CommentType CommentType      `gorm:"type:enum('comment', 'status_change', 'assignment', 'time_log', 'file_upload', 'system');default:comment" json:"comment_type"`
	Content     string           `gorm:"type:text;not null" json:"content" binding:"required"`
	TimeSpent   *decimal.Decimal `gorm:"type:decimal(5,2)" json:"time_spent"`
	Billable    *bool            `gorm:"not null;default:true" json:"billable"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewCardComment struct {
	CardId      int              `json:"card_id" binding:"required"`
	CommentType CommentType      `json:"comment_type"`
	Content     string           `json:"content" binding:"required"`
	TimeSpent   *decimal.Decimal `json:"time_spent"`
	Billable    *bool            `json:"billable"`
}

func CreateCardComment(ctx context.Context, input *NewCardComment) (*CardComment, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	commentType := input.CommentType
	if commentType == "" {
		commentType = CommentTypeComment
	} else if _, err := ParseCommentType(string(commentType)); err != nil {
		return nil, err
	}
	if input.TimeSpent != nil && input.TimeSpent.IsNegative() {
		return nil, errors.New("time spent must not be negative")
	}
	if commentType == CommentTypeTimeLog && input.TimeSpent == nil {
		return nil, errors.New("a time log needs the hours spent")
	}

	card, err := utils.FetchModelForChange[ProjectCard](ctx, input.CardId)
	if err != nil {
		return nil, errors.New("project card not found")
	}

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	billable := true
	if input.Billable != nil {
		billable = *input.Billable
	}

	comment := CardComment{
		CardId:      input.CardId,
		UserId:      userId,
		CommentType: commentType,
		Content:     input.Content,
		TimeSpent:   input.TimeSpent,
		Billable:    &billable,
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&comment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// logged hours roll onto the card in the same transaction
	if commentType == CommentTypeTimeLog && input.TimeSpent != nil {
		updates := map[string]interface{}{
			"ActualHours": card.ActualHours.Add(*input.TimeSpent),
		}
		if billable {
			updates["BillableHours"] = card.BillableHours.Add(*input.TimeSpent)
		}
		if err := tx.WithContext(ctx).Model(&card).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// system-written activity rows share the comment table
func logCardActivity(ctx context.Context, tx *gorm.DB, cardId int, commentType CommentType, content string) error {

	userId, _ := utils.GetUserIdFromContext(ctx)
	comment := CardComment{
		CardId:      cardId,
		UserId:      userId,
		CommentType: commentType,
		Content:     content,
		Billable:    utils.NewTrue(),
	}
	return tx.WithContext(ctx).Create(&comment).Error
}

// GetCardComments returns a card's comments and activity, newest first.
// The log is append-only, there is no delete.
func GetCardComments(ctx context.Context, cardId int, commentType *CommentType) ([]*CardComment, error) {

	if err := utils.ValidateResourceId[ProjectCard](ctx, cardId); err != nil {
		return nil, errors.New("project card not found")
	}

	db := config.GetDB()
	var results []*CardComment

	dbCtx := db.WithContext(ctx).Where("card_id = ?", cardId)
	if commentType != nil {
		dbCtx = dbCtx.Where("comment_type = ?", *commentType)
	}

	if err := dbCtx.Order("created_at DESC").Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
