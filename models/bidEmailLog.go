package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

// BidEmailLog keeps a record of every bid email handed to the mail gateway.
// delivery itself happens outside this service
type BidEmailLog struct {
	ID             int       `gorm:"primary_key" json:"id"`
	BidSheetId     int       `gorm:"index;not null" json:"bid_sheet_id"`
	RecipientEmail string    `gorm:"size:100;not null" json:"recipient_email"`
	Subject        string    `gorm:"size:200" json:"subject"`
	Message        string    `gorm:"type:text" json:"message"`
	SentById       int       `gorm:"not null" json:"sent_by_id"`
	Success        *bool     `gorm:"not null;default:true" json:"success"`
	ErrorMessage   string    `gorm:"type:text" json:"error_message"`
	SentAt         time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

type NewBidEmailLog struct {
	RecipientEmail string `json:"recipient_email" binding:"required"`
	Subject        string `json:"subject" binding:"required"`
	Message        string `json:"message"`
	Success        *bool  `json:"success"`
	ErrorMessage   string `json:"error_message"`
}

// RecordBidEmail logs an outgoing bid email and marks a draft bid as sent
// once a delivery succeeded. failed attempts are logged without touching the bid
func RecordBidEmail(ctx context.Context, bidSheetId int, input *NewBidEmailLog) (*BidEmailLog, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if !utils.IsValidEmail(input.RecipientEmail) {
		return nil, errors.New("invalid recipient email")
	}

	bidSheet, err := utils.FetchModel[BidSheet](ctx, bidSheetId)
	if err != nil {
		return nil, errors.New("bid sheet not found")
	}

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	success := input.Success
	if success == nil {
		success = utils.NewTrue()
	}

	emailLog := BidEmailLog{
		BidSheetId:     bidSheetId,
		RecipientEmail: input.RecipientEmail,
		Subject:        input.Subject,
		Message:        input.Message,
		SentById:       userId,
		Success:        success,
		ErrorMessage:   input.ErrorMessage,
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&emailLog).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if *success && bidSheet.Status == BidSheetStatusDraft {
		updates := map[string]interface{}{
			"Status": BidSheetStatusSent,
		}
		if bidSheet.SentAt == nil {
			updates["SentAt"] = time.Now()
		}
		if err := tx.WithContext(ctx).Model(&bidSheet).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &emailLog, nil
}

// DefaultBidEmailContent prefills recipient, subject and body for the compose screen.
func DefaultBidEmailContent(ctx context.Context, bidSheetId int) (*NewBidEmailLog, error) {

	bidSheet, err := utils.FetchModel[BidSheet](ctx, bidSheetId, "Customer")
	if err != nil {
		return nil, errors.New("bid sheet not found")
	}

	companyInfo, err := GetCompanyInfo(ctx)
	if err != nil {
		return nil, err
	}

	customerName := ""
	recipient := ""
	if bidSheet.Customer != nil {
		customerName = bidSheet.Customer.Name
		recipient = bidSheet.Customer.Email
	}

	message := fmt.Sprintf(
		"Dear %s,\n\nPlease find attached our bid for %s.\n\n"+
			"This bid is valid until %s.\n\n"+
			"If you have any questions, please don't hesitate to contact us.\n\n"+
			"Best regards,\n%s",
		customerName, bidSheet.Title,
		bidSheet.ValidUntil.Format("January 02, 2006"),
		companyInfo.Name)

	return &NewBidEmailLog{
		RecipientEmail: recipient,
		Subject:        fmt.Sprintf("Bid #%s - %s", bidSheet.BidNumber, bidSheet.Title),
		Message:        message,
	}, nil
}

func GetBidEmailLogs(ctx context.Context, bidSheetId int) ([]*BidEmailLog, error) {

	db := config.GetDB()
	var emailLogs []*BidEmailLog
	err := db.WithContext(ctx).
		Where("bid_sheet_id = ?", bidSheetId).
		Order("sent_at DESC").
		Find(&emailLogs).Error
	if err != nil {
		return nil, err
	}
	return emailLogs, nil
}
