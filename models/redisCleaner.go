package models

import (
	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
)

type RedisCleaner interface {
	RemoveInstanceRedis() error // remove one
	RemoveAllRedis() error      // remove list & map if exists
}

// remove both item & list + map
func RemoveRedisBoth[T RedisCleaner](obj T) error {
	if err := obj.RemoveInstanceRedis(); err != nil {
		return err
	}
	if err := obj.RemoveAllRedis(); err != nil {
		return err
	}
	return nil
}

func (obj CompanyInfo) RemoveInstanceRedis() error {
	if err := config.RemoveRedisKey("CompanyInfo"); err != nil {
		return err
	}
	return nil
}

func (obj CompanyInfo) RemoveAllRedis() error {
	return nil
}

func (obj SLALevel) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[SLALevel](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj SLALevel) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllSLALevel](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllSLALevel](); err != nil {
		return err
	}
	return nil
}

func (obj ServiceCategory) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[ServiceCategory](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj ServiceCategory) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllServiceCategory](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllServiceCategory](); err != nil {
		return err
	}
	return nil
}

func (obj ServiceItem) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[ServiceItem](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj ServiceItem) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllServiceItem](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllServiceItem](); err != nil {
		return err
	}
	return nil
}

func (obj PrintServiceCategory) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[PrintServiceCategory](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj PrintServiceCategory) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllPrintServiceCategory](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllPrintServiceCategory](); err != nil {
		return err
	}
	return nil
}

func (obj PrintServiceItem) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[PrintServiceItem](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj PrintServiceItem) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllPrintServiceItem](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllPrintServiceItem](); err != nil {
		return err
	}
	return nil
}

func (obj ProductSheet) RemoveInstanceRedis() error {
	if err := utils.RemoveRedisItem[ProductSheet](obj.ID); err != nil {
		return err
	}
	return nil
}

func (obj ProductSheet) RemoveAllRedis() error {
	if err := utils.RemoveRedisList[AllProductSheet](); err != nil {
		return err
	}
	if err := utils.RemoveRedisMap[AllProductSheet](); err != nil {
		return err
	}
	return nil
}
