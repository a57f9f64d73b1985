package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type TicketNote struct {
	ID         int       `gorm:"primary_key" json:"id"`
	TicketId   int       `gorm:"index;not null" json:"ticket_id" binding:"required"`
	AuthorId   int       `gorm:"not null" json:"author_id"`
	Note       string    `gorm:"type:text;not null" json:"note" binding:"required"`
	IsInternal *bool     `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewTicketNote struct {
	TicketId   int    `json:"ticket_id" binding:"required"`
	Note       string `json:"note" binding:"required"`
	IsInternal *bool  `json:"is_internal"`
}

func CreateTicketNote(ctx context.Context, input *NewTicketNote) (*TicketNote, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	ticket, err := utils.FetchModelForChange[Ticket](ctx, input.TicketId)
	if err != nil {
		return nil, errors.New("ticket not found")
	}

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	isInternal := false
	if input.IsInternal != nil {
		isInternal = *input.IsInternal
	}

	note := TicketNote{
		TicketId:   input.TicketId,
		AuthorId:   userId,
		Note:       input.Note,
		IsInternal: &isInternal,
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&note).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// first customer-visible note stamps the response milestone
	if !isInternal && ticket.FirstResponseAt == nil {
		if err := tx.WithContext(ctx).Model(&ticket).
			UpdateColumn("FirstResponseAt", note.CreatedAt).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &note, nil
}

func DeleteTicketNote(ctx context.Context, id int) (*TicketNote, error) {

	result, err := utils.FetchModel[TicketNote](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetTicketNotes(ctx context.Context, ticketId int, includeInternal bool) ([]*TicketNote, error) {

	db := config.GetDB()
	var results []*TicketNote

	dbCtx := db.WithContext(ctx).Where("ticket_id = ?", ticketId)
	if !includeInternal {
		dbCtx = dbCtx.Where("is_internal = ?", false)
	}

	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
