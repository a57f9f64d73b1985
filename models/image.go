package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

// MaxImageUploadBytes caps a single image upload.
const MaxImageUploadBytes = 5 << 20

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Image struct {
	ID            int    `gorm:"primary_key" json:"id"`
	ImageUrl      string `json:"image_url"`
	ThumbnailUrl  string `json:"thumbnail_url"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   int    `json:"reference_id"`
}

type NewImage struct {
	HasId
	HasIsDeleted
	ImageUrl     string `json:"image_url"`
	ThumbnailUrl string `json:"thumbnail_url"`
}

type UploadResponse struct {
	ImageUrl     string `json:"image_url"`
	ThumbnailUrl string `json:"thumbnail_url"`
}

func mapNewImages(imageInput []*NewImage, referenceType string, referenceId int) ([]*Image, error) {

	var images []*Image

	for _, input := range imageInput {
		image, err := input.MapInput(referenceType, referenceId)
		if err != nil {
			return nil, err
		}

		images = append(images, image)
	}
	return images, nil
}

// UploadImage stores an image and its 200px thumbnail under the given
// storage path and returns the public URLs of both.
func UploadImage(ctx context.Context, file io.Reader, filename string, storagePath string) (string, string, error) {

	if file == nil {
		return "", "", errors.New("nil file provided")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImageUploadBytes+1))
	if err != nil {
		return "", "", err
	}
	if len(data) > MaxImageUploadBytes {
		return "", "", fmt.Errorf("image exceeds the %dMB upload limit", MaxImageUploadBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", "", errors.New("file has no extension")
	}
	if !imageExtensions[ext] {
		return "", "", fmt.Errorf("unsupported image type: %s", ext)
	}

	imageData := base64.StdEncoding.EncodeToString(data)

	uniqueFilename := utils.GenerateUniqueFilename() + ext
	originalObjectName := filepath.Join(storagePath, uniqueFilename)
	thumbnailObjectName := filepath.Join(storagePath, "thumbnails", uniqueFilename)

	err = utils.SaveImageToGCS(ctx, originalObjectName, imageData)
	if err != nil {
		return "", "", err
	}

	thumbnailData, err := generateThumbnail(data)
	if err != nil {
		return "", "", err
	}

	err = utils.SaveImageToGCS(ctx, thumbnailObjectName, base64.StdEncoding.EncodeToString(thumbnailData))
	if err != nil {
		return "", "", err
	}

	return utils.BuildObjectAccessURL(originalObjectName), utils.BuildObjectAccessURL(thumbnailObjectName), nil
}

// RemoveImage deletes an uploaded image and its thumbnail from storage.
// images still referenced by a database row are kept
func RemoveImage(ctx context.Context, fullUrl string) (*UploadResponse, error) {

	var count int64
	db := config.GetDB()

	if err := db.Model(&Image{}).WithContext(ctx).Where("image_url = ?", fullUrl).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("cannot delete image associated with database")
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
	storagePath := strings.Split(objectName, "/")[0]
	filename := strings.Split(objectName, "/")[1]
	thumbnailObjectName := filepath.Join(storagePath, "thumbnails", filename)
	if err := utils.DeleteImageFromGCS(ctx, thumbnailObjectName); err != nil {
		return nil, err
	}

	return &UploadResponse{
		ImageUrl:     utils.BuildObjectAccessURL(objectName),
		ThumbnailUrl: utils.BuildObjectAccessURL(thumbnailObjectName),
	}, nil
}

func generateThumbnail(originalData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(originalData))
	if err != nil {
		return nil, err
	}

	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var thumbnailBuffer bytes.Buffer
	err = imaging.Encode(&thumbnailBuffer, thumbnail, imaging.JPEG)
	if err != nil {
		return nil, err
	}

	return thumbnailBuffer.Bytes(), nil
}

// implements Upserter
func (img *Image) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(&img).Error
}

func (img *Image) Update(tx *gorm.DB, ctx context.Context, data map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&img).Updates(data).Error
}

// expected img is loaded from db.
// removes the row first, then the stored objects
func (img *Image) Delete(tx *gorm.DB, ctx context.Context) error {

	if err := tx.WithContext(ctx).Delete(&img).Error; err != nil {
		return err
	}
	if err := utils.DeleteImageFromGCS(ctx, utils.ExtractObjectKeyFromURL(img.ImageUrl)); err != nil {
		return err
	}
	if err := utils.DeleteImageFromGCS(ctx, utils.ExtractObjectKeyFromURL(img.ThumbnailUrl)); err != nil {
		return err
	}
	return nil
}

// map newImage to Image, for db.Create(&image)
func (input NewImage) MapInput(referenceType string, referenceId int) (*Image, error) {
	if err := utils.CheckImageExistInGCS(input.ImageUrl); err != nil {
		return nil, err
	}
	if err := utils.CheckImageExistInGCS(input.ThumbnailUrl); err != nil {
		return nil, err
	}
	return &Image{
		ReferenceType: referenceType,
		ReferenceID:   referenceId,
		ImageUrl:      input.ImageUrl,
		ThumbnailUrl:  input.ThumbnailUrl,
	}, nil
}

func (input NewImage) Fillable() (map[string]interface{}, error) {
	if err := utils.CheckImageExistInGCS(input.ImageUrl); err != nil {
		return nil, err
	}
	if err := utils.CheckImageExistInGCS(input.ThumbnailUrl); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"ImageUrl":     input.ImageUrl,
		"ThumbnailUrl": input.ThumbnailUrl,
	}, nil
}

func UpsertImages(ctx context.Context, tx *gorm.DB, inputImages []*NewImage, referenceType string, referenceId int) ([]*Image, error) {
	return UpsertPolymorphicAssociation(ctx, tx, inputImages, referenceType, referenceId)
}
