package models

import (
	"context"
	"errors"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"gorm.io/gorm"
)

// Document is a stored file attached to a ticket, bid, estimate, card or
// product sheet.
type Document struct {
	ID            int    `gorm:"primary_key" json:"id"`
	DocumentUrl   string `gorm:"size:500;not null" json:"document_url"`
	FileName      string `gorm:"size:255" json:"file_name"`
	FileSize      int64  `gorm:"default:0" json:"file_size"`
	Description   string `gorm:"size:200" json:"description"`
	ReferenceType string `gorm:"size:50;index:idx_documents_reference" json:"reference_type"`
	ReferenceID   int    `gorm:"index:idx_documents_reference" json:"reference_id"`
	CreatedById   int    `json:"created_by_id"`
}

func (d *Document) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(&d).Error
}

// expected d is loaded from db.
// removes the row first, then the stored object
func (d *Document) Delete(tx *gorm.DB, ctx context.Context) error {
	if err := tx.WithContext(ctx).Delete(&d).Error; err != nil {
		return err
	}
	if err := utils.DeleteImageFromGCS(ctx, utils.ExtractObjectKeyFromURL(d.DocumentUrl)); err != nil {
		return err
	}
	return nil
}

func (d *Document) Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&d).Updates(fillable).Error
}

func GetDocument(ctx context.Context, id int) (*Document, error) {

	var result Document
	db := config.GetDB()
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

// RemoveFile deletes an uploaded file from storage.
// files still referenced by a document row are kept
func RemoveFile(ctx context.Context, fullUrl string) (*UploadResponse, error) {

	var count int64
	db := config.GetDB()

	if err := db.Model(&Document{}).WithContext(ctx).Where("document_url = ?", fullUrl).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("cannot delete file associated with database")
	}

	objectName := utils.ExtractObjectKeyFromURL(fullUrl)
	if objectName == "" {
		return nil, errors.New("invalid url")
	}
	if ok, err := utils.ObjectExistsInGCS(ctx, objectName); !ok || err != nil {
		return nil, errors.New("object does not exist")
	}

	if err := utils.DeleteImageFromGCS(ctx, objectName); err != nil {
		return nil, err
	}

	return &UploadResponse{
		ImageUrl: fullUrl,
	}, nil
}

func deleteDocuments(ctx context.Context, tx *gorm.DB, documents []*Document) error {
	for _, doc := range documents {
		if err := doc.Delete(tx, ctx); err != nil {
			return err
		}
	}
	return nil
}
