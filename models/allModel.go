package models

import (
	"context"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

// get AllModelMap for loader, redis or db
func MapAllModel[ModelT any, AllT Identifier](ctx context.Context) (map[int]*AllT, error) {

	// retrieve from redis
	key := utils.GetTypeName[AllT]() + "Map"

	var allMap map[int]*AllT

	// retrieve from redis
	if exists, err := config.GetRedisObject(key, &allMap); err != nil {
		return nil, err
	} else if !exists {
		// if the map has not been cached yet
		// fetch resources and constrcut the map, cache the result

		allMap = make(map[int]*AllT)
		var allSlice []*AllT
		db := config.GetDB()
		var m ModelT
		dbCtx := db.WithContext(ctx).Model(&m)
		if err := dbCtx.Find(&allSlice).Error; err != nil {
			return nil, err
		}

		// fill the map
		for _, allModel := range allSlice {
			allMap[(*allModel).GetId()] = allModel
		}

		// store redis
		var duration time.Duration
		if err := config.SetRedisObject(key, &allMap, duration); err != nil {
			return nil, err
		}
	}

	return allMap, nil
}

// embedding struct will receive ID field, satisfy Identifier interface
type HasId struct {
	ID int `json:"id"`
}

func (h HasId) GetId() int {
	return h.ID
}

type AllUser struct {
	HasId
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type AllSLALevel struct {
	HasId
	Priority            Priority `json:"priority"`
	ResponseTimeHours   int      `json:"response_time_hours"`
	ResolutionTimeHours int      `json:"resolution_time_hours"`
}

type AllServiceCategory struct {
	HasId
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type AllServiceItem struct {
	HasId
	CategoryId       int             `json:"category_id"`
	Name             string          `json:"name"`
	DefaultUnitPrice decimal.Decimal `json:"default_unit_price"`
	UnitType         string          `json:"unit_type"`
	IsActive         bool            `json:"is_active"`
}

type AllPrintServiceCategory struct {
	HasId
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

type AllPrintServiceItem struct {
	HasId
	CategoryId int             `json:"category_id"`
	Name       string          `json:"name"`
	UnitType   PrintUnitType   `json:"unit_type"`
	Tier1Price decimal.Decimal `json:"tier_1_price"`
	IsActive   bool            `json:"is_active"`
}

type AllProductSheet struct {
	HasId
	Name        string          `json:"name"`
	ProductType ProductType     `json:"product_type"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Featured    bool            `json:"featured"`
	IsActive    bool            `json:"is_active"`
}

func ListAllUser(ctx context.Context) ([]*AllUser, error) {
	return ListAllResource[User, AllUser](ctx)
}

func MapAllUser(ctx context.Context) (map[int]*AllUser, error) {
	return MapAllModel[User, AllUser](ctx)
}

func ListAllSLALevel(ctx context.Context) ([]*AllSLALevel, error) {
	return ListAllResource[SLALevel, AllSLALevel](ctx)
}

func MapAllSLALevel(ctx context.Context) (map[int]*AllSLALevel, error) {
	return MapAllModel[SLALevel, AllSLALevel](ctx)
}

func ListAllServiceCategory(ctx context.Context) ([]*AllServiceCategory, error) {
	return ListAllResource[ServiceCategory, AllServiceCategory](ctx, "sort_order", "name")
}

func MapAllServiceCategory(ctx context.Context) (map[int]*AllServiceCategory, error) {
	return MapAllModel[ServiceCategory, AllServiceCategory](ctx)
}

func ListAllServiceItem(ctx context.Context) ([]*AllServiceItem, error) {
	return ListAllResource[ServiceItem, AllServiceItem](ctx, "name")
}

func MapAllServiceItem(ctx context.Context) (map[int]*AllServiceItem, error) {
	return MapAllModel[ServiceItem, AllServiceItem](ctx)
}

func ListAllPrintServiceCategory(ctx context.Context) ([]*AllPrintServiceCategory, error) {
	return ListAllResource[PrintServiceCategory, AllPrintServiceCategory](ctx, "sort_order", "name")
}

func MapAllPrintServiceCategory(ctx context.Context) (map[int]*AllPrintServiceCategory, error) {
	return MapAllModel[PrintServiceCategory, AllPrintServiceCategory](ctx)
}

func ListAllPrintServiceItem(ctx context.Context) ([]*AllPrintServiceItem, error) {
	return ListAllResource[PrintServiceItem, AllPrintServiceItem](ctx, "name")
}

func MapAllPrintServiceItem(ctx context.Context) (map[int]*AllPrintServiceItem, error) {
	return MapAllModel[PrintServiceItem, AllPrintServiceItem](ctx)
}

func ListAllProductSheet(ctx context.Context) ([]*AllProductSheet, error) {
	return ListAllResource[ProductSheet, AllProductSheet](ctx, "product_type", "sort_order", "name")
}

func MapAllProductSheet(ctx context.Context) (map[int]*AllProductSheet, error) {
	return MapAllModel[ProductSheet, AllProductSheet](ctx)
}
