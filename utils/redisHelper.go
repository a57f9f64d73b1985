package utils

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
)

var mutex sync.Mutex

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* generic functions */

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

// get type name of struct
func GetType(i interface{}) string {
	return reflect.TypeOf(i).Name()
}

/* Redis */

// check if model has expiration date
func typeHasExpiration(typeName string) bool {
	expirableTypes := map[string]bool{
		"ServiceItem":          true,
		"ServiceCategory":      true,
		"PrintServiceItem":     true,
		"PrintServiceCategory": true,
		"ProductSheet":         true,
		"SLALevel":             true,
	}
	return expirableTypes[typeName]
}

// store instance, obj should be a pointer
func StoreRedis[T any](obj any, id int) error {
	typeName := GetTypeName[T]()
	key := typeName + ":" + fmt.Sprint(id)

	var duration time.Duration
	if typeHasExpiration(typeName) {
		duration = GetCacheLifespan()
	}
	return config.SetRedisObject(key, &obj, duration)
}

// store object
func StoreRedisList[T any](obj any) error {
	typeName := GetTypeName[T]()
	key := typeName + "List"

	var duration time.Duration
	if typeHasExpiration(typeName) {
		duration = GetCacheLifespan()
	}
	return config.SetRedisObject(key, &obj, duration)
}

// get from redis
// returns nil if does not exist
func RetrieveRedis[T any](id int) (*T, error) {
	var result *T
	key := GetTypeName[T]() + ":" + fmt.Sprint(id)
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// retrieve a list
func RetrieveRedisList[T any]() ([]*T, error) {
	key := GetTypeName[T]() + "List"

	var result []*T
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// clear list, TypeList
func RemoveRedisList[T any]() error {
	var key string = GetTypeName[T]() + "List"
	return config.RemoveRedisKey(key)
}

func RemoveRedisMap[T any]() error {
	var key string = GetTypeName[T]() + "Map"
	return config.RemoveRedisKey(key)
}

// remove an instance, Type:$id
func RemoveRedisItem[T any](id int) error {
	key := GetTypeName[T]() + ":" + fmt.Sprint(id)
	return config.RemoveRedisKey(key)
}

func GetSequence[T any](ctx context.Context) (int64, error) {
	// lock
	var model T
	// fmt.Println("waiting for mutex: " + time.Now().Format("01:04:05"))
	mutex.Lock()
	defer mutex.Unlock()
	// fmt.Println("UNLOCked mutex: " + time.Now().Format("01:04:05"))
	cacheKey := strings.ToLower(GetTypeName[T]()) + "_seq"
	var seqNo int64
	var err error
	db := config.GetDB()

	for {
		seqNo, err = config.GetRedisCounter(ctx, cacheKey)
		if err != nil {
			return 0, err
		}
		// if not found in redis, get from db
		if seqNo == 1 {
			// get max seq no from db
			var dbSeq *int64
			if err := db.WithContext(ctx).Model(&model).Select("max(sequence_no)").
				Scan(&dbSeq).Error; err != nil {
				return 0, err
			}
			// in case db has no records yet
			if dbSeq == nil {
				seqNo = 0
			} else {
				seqNo = *dbSeq
			}
			// set redis
			seqNo++
			if err := config.SetRedisObject(cacheKey, &seqNo, 0); err != nil {
				return 0, err
			}
		}
		// check if sequence number exists in db
		err = ValidateUnique[T](ctx, "sequence_no", seqNo, 0)
		if err == nil {
			break
		}
	}
	// unlock
	return seqNo, nil
}

// GetScopedSequence issues the next sequence number within a prefix scope
// (estimate numbers restart every month, the scope is the YYYYMM prefix).
func GetScopedSequence[T any](ctx context.Context, scope string) (int64, error) {
	var model T
	mutex.Lock()
	defer mutex.Unlock()
	cacheKey := strings.ToLower(GetTypeName[T]()) + "_seq:" + scope
	var seqNo int64
	var err error
	db := config.GetDB()

	for {
		seqNo, err = config.GetRedisCounter(ctx, cacheKey)
		if err != nil {
			return 0, err
		}
		if seqNo == 1 {
			var dbSeq *int64
			if err := db.WithContext(ctx).Model(&model).Select("max(sequence_no)").
				Where("number_prefix = ?", scope).
				Scan(&dbSeq).Error; err != nil {
				return 0, err
			}
			if dbSeq == nil {
				seqNo = 0
			} else {
				seqNo = *dbSeq
			}
			seqNo++
			if err := config.SetRedisObject(cacheKey, &seqNo, 0); err != nil {
				return 0, err
			}
		}
		count, err := ResourceCountWhere[T](ctx, "sequence_no = ? AND number_prefix = ?", seqNo, scope)
		if err != nil {
			return 0, err
		}
		if count == 0 {
			break
		}
	}
	return seqNo, nil
}
