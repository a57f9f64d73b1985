package utils

import (
	"context"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"gorm.io/gorm"
)

type ModelChangeLocker interface {
	CheckChangeLock(context.Context) error
}

/* DB fetching */

// fetch model from db
// (may return RecordNotFound)
func FetchModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}

// fetch model and check if the record is locked against edits
func FetchModelForChange[T ModelChangeLocker](ctx context.Context, id int, associations ...string) (*T, error) {
	result, err := FetchModel[T](ctx, id, associations...)
	if err != nil {
		return nil, err
	}
	if err := (*result).CheckChangeLock(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// fetch all models from db
func FetchAllModels[T any](ctx context.Context, associations ...string) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var results []*T
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return results, nil
}

func GetPolymorphicId[T any](ctx context.Context, referenceType string, referenceId int) (int, error) {
	db := config.GetDB()
	var v T
	var id int
	err := db.WithContext(ctx).Model(&v).Where("reference_type = ? AND reference_id = ?", referenceType, referenceId).Select("id").Scan(&id).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return id, err
}
