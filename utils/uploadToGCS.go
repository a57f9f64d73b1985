package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
// Prefers ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS),
// explicit JSON can be supplied locally via GCS_CREDENTIALS_JSON.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func getBucketName() (string, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return "", errors.New("GCS_BUCKET is required")
	}
	return bucketName, nil
}

// SaveImageToGCS uploads base64 image data, used by the product sheet image flow.
func SaveImageToGCS(ctx context.Context, objectName, imageData string) error {
	decodedData, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return err
	}
	bucketName, err := getBucketName()
	if err != nil {
		return err
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "image/jpeg"
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(decodedData); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return nil
}

// UploadFileToGCS uploads attachment content. The MIME type is sniffed from
// the content, office formats are recognized by extension since they sniff
// as zip archives.
func UploadFileToGCS(ctx context.Context, objectName string, fileContent io.Reader) error {
	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return fmt.Errorf("failed to read file content: %v", err)
	}

	mimeType := http.DetectContentType(fileData)

	if mimeType == "application/zip" {
		if strings.HasSuffix(objectName, ".docx") {
			mimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		} else if strings.HasSuffix(objectName, ".xlsx") {
			mimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		}
	}

	allowedMimeTypes := map[string]bool{
		"application/pdf":          true,
		"application/msword":       true,
		"application/vnd.ms-excel": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
		"image/jpeg": true,
		"image/png":  true,
	}

	if !allowedMimeTypes[mimeType] {
		return fmt.Errorf("unsupported file type: %s", mimeType)
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bucketName, err := getBucketName()
	if err != nil {
		return err
	}

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(fileData); err != nil {
		return fmt.Errorf("failed to upload file to Google Cloud Storage: %v", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}

	return nil
}

// UploadBytesToGCS uploads raw bytes with an explicit content type, used by
// the report export flow.
func UploadBytesToGCS(ctx context.Context, objectName string, data []byte, contentType string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bucketName, err := getBucketName()
	if err != nil {
		return err
	}

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		return fmt.Errorf("failed to upload bytes to Google Cloud Storage: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}
	return nil
}

// DeleteImageFromGCS removes an object, a missing object is not an error.
func DeleteImageFromGCS(ctx context.Context, objectName string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bucketName, err := getBucketName()
	if err != nil {
		return err
	}

	err = client.Bucket(bucketName).Object(objectName).Delete(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil
		}
		return err
	}

	return nil
}

// ObjectExistsInGCS checks for an object without downloading its content.
func ObjectExistsInGCS(ctx context.Context, objectName string) (bool, error) {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return false, err
	}
	defer client.Close()

	bucketName, err := getBucketName()
	if err != nil {
		return false, err
	}

	_, err = client.Bucket(bucketName).Object(objectName).Attrs(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// CheckImageExistInGCS verifies a stored object by its public URL. URLs that
// do not resolve to an object key fall back to a HEAD request.
func CheckImageExistInGCS(imageURL string) error {
	if objectKey := ExtractObjectKeyFromURL(imageURL); objectKey != "" {
		ok, err := ObjectExistsInGCS(context.Background(), objectKey)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		return errors.New("image does not exist")
	}

	resp, err := http.Head(imageURL)
	if err != nil {
		return errors.New("invalid image url")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	return errors.New("image does not exist")
}
