package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/google/uuid"
)

// MaxAttachmentUploadBytes caps a single attachment upload.
const MaxAttachmentUploadBytes = 5 << 20

// document's reference type
func validateReferenceType(ctx context.Context, referenceType string, referenceId int) error {
	db := config.GetDB()
	validReferenceTypes := map[string]bool{
		"tickets":         true,
		"bid_sheets":      true,
		"print_estimates": true,
		"project_cards":   true,
		"product_sheets":  true,
	}
	if ok := validReferenceTypes[referenceType]; !ok {
		return errors.New("invalid reference type")
	}

	// check if it exists
	var count int64
	if err := db.WithContext(ctx).Table(referenceType).Where("id = ?", referenceId).Count(&count).Error; err != nil {
		return err
	}
	if count <= 0 {
		return utils.ErrorRecordNotFound
	}

	return nil
}

func CreateAttachment(ctx context.Context, file io.Reader, filename string, referenceType string, referenceId int) (*Document, error) {

	// validate if the reference exists
	if err := validateReferenceType(ctx, referenceType, referenceId); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errors.New("nil file provided")
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		return nil, errors.New("file has no extension")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxAttachmentUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxAttachmentUploadBytes {
		return nil, fmt.Errorf("file exceeds the %dMB upload limit", MaxAttachmentUploadBytes>>20)
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	objectURL := path.Join(referenceType, uuid.New().String()+ext)

	// Upload file to storage provider
	err = utils.UploadFileToGCS(ctx, objectURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to storage provider: %v", err)
	}

	var result Document = Document{
		DocumentUrl:   utils.BuildObjectAccessURL(objectURL),
		FileName:      filename,
		FileSize:      int64(len(data)),
		ReferenceType: referenceType,
		ReferenceID:   referenceId,
		CreatedById:   userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// Types accepted for direct-to-storage uploads, with the extension used
// when the filename has none.
var attachmentMimeTypes = map[string]string{
	"application/pdf":          ".pdf",
	"application/msword":       ".doc",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// SignAttachmentUpload hands out a short-lived signed PUT URL so large files
// can go straight to storage, FinalizeAttachment records the row once the
// client has uploaded.
func SignAttachmentUpload(ctx context.Context, filename string, mimeType string, referenceType string, referenceId int) (*utils.SignedUpload, error) {

	if err := validateReferenceType(ctx, referenceType, referenceId); err != nil {
		return nil, err
	}

	fallbackExt, ok := attachmentMimeTypes[mimeType]
	if !ok {
		return nil, errors.New("unsupported file type")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = fallbackExt
	}

	objectKey := path.Join(referenceType, uuid.New().String()+ext)
	return utils.SignUpload(ctx, objectKey, mimeType, 15*time.Minute)
}

// FinalizeAttachment records a Document for an object uploaded through a
// signed URL.
func FinalizeAttachment(ctx context.Context, objectKey string, filename string, referenceType string, referenceId int) (*Document, error) {

	if objectKey == "" || strings.Contains(objectKey, "..") || strings.HasPrefix(objectKey, "/") {
		return nil, errors.New("invalid object key")
	}

	return CreateAttachmentFromURL(ctx, utils.BuildObjectAccessURL(objectKey), filename, referenceType, referenceId)
}

// CreateAttachmentFromURL records an already-uploaded file against a reference.
func CreateAttachmentFromURL(ctx context.Context, documentURL string, filename string, referenceType string, referenceId int) (*Document, error) {

	if err := validateReferenceType(ctx, referenceType, referenceId); err != nil {
		return nil, err
	}

	if err := utils.CheckImageExistInGCS(documentURL); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	var result Document = Document{
		DocumentUrl:   documentURL,
		FileName:      filename,
		ReferenceType: referenceType,
		ReferenceID:   referenceId,
		CreatedById:   userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func DeleteAttachment(ctx context.Context, id int) (*Document, error) {

	db := config.GetDB()
	var result Document
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := result.Delete(db, ctx); err != nil {
		return nil, err
	}
	return &result, nil
}

func GetAttachments(ctx context.Context, referenceType string, referenceId int) ([]*Document, error) {

	if err := validateReferenceType(ctx, referenceType, referenceId); err != nil {
		return nil, err
	}

	var results []*Document
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceId).
		Order("id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
