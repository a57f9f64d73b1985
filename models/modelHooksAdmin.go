package models

import (
	"gorm.io/gorm"
)

func (u *User) AfterCreate(tx *gorm.DB) (err error) {
	if err := createHistory(tx, "REGISTER", u.ID, "users", nil, u, "created user"); err != nil {
		return err
	}
	// clearing cache
	if err := u.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) (err error) {
	// creating history
	if err := SaveHistoryUpdate(tx, u.ID, u, "Updated User"); err != nil {
		return err
	}
	// clearing cache
	if err := RemoveRedisBoth(u); err != nil {
		return err
	}

	return nil
}

func (u *User) AfterDelete(tx *gorm.DB) (err error) {
	// creating history
	if err := SaveHistoryDelete(tx, u.ID, u, "Deleted User"); err != nil {
		return err
	}
	// clearing cache
	if err := RemoveRedisBoth(u); err != nil {
		return err
	}

	return nil
}
