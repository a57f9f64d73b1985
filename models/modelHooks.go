package models

import (
	"fmt"

	"gorm.io/gorm"
)

// audit hooks. every header entity writes History inside its own
// transaction, cached catalog entities also drop their redis entries.
// detail rows (items, notes, comments, team rosters) are not hooked,
// they get batch-deleted with their header.

func (t *Ticket) AfterCreate(tx *gorm.DB) (err error) {
	description := fmt.Sprintf("Ticket %s created.", t.TicketNumber)
	if err := SaveHistoryCreate(tx, t.ID, t, description); err != nil {
		return err
	}

	return nil
}

func (t *Ticket) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, t.ID, t, "Updated Ticket"); err != nil {
		return err
	}

	return nil
}

func (t *Ticket) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, t.ID, t, "Deleted Ticket"); err != nil {
		return err
	}

	return nil
}

func (b *BidSheet) AfterCreate(tx *gorm.DB) (err error) {
	description := describeDocumentCreated("BidSheet", b.BidNumber, b.TotalAmount)
	if err := SaveHistoryCreate(tx, b.ID, b, description); err != nil {
		return err
	}

	return nil
}

func (b *BidSheet) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, b.ID, b, "Updated BidSheet"); err != nil {
		return err
	}

	return nil
}

func (b *BidSheet) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, b.ID, b, "Deleted BidSheet"); err != nil {
		return err
	}

	return nil
}

func (p *PrintEstimate) AfterCreate(tx *gorm.DB) (err error) {
	description := describeDocumentCreated("PrintEstimate", p.EstimateNumber, p.TotalAmount)
	if err := SaveHistoryCreate(tx, p.ID, p, description); err != nil {
		return err
	}

	return nil
}

func (p *PrintEstimate) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, p.ID, p, "Updated PrintEstimate"); err != nil {
		return err
	}

	return nil
}

func (p *PrintEstimate) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, p.ID, p, "Deleted PrintEstimate"); err != nil {
		return err
	}

	return nil
}

func (c *ProjectCard) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, c.ID, c, "Created ProjectCard"); err != nil {
		return err
	}

	return nil
}

func (c *ProjectCard) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, c.ID, c, "Updated ProjectCard"); err != nil {
		return err
	}

	return nil
}

func (c *ProjectCard) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, c.ID, c, "Deleted ProjectCard"); err != nil {
		return err
	}

	return nil
}

func (v *Vehicle) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, v.ID, v, "Created Vehicle"); err != nil {
		return err
	}

	return nil
}

func (v *Vehicle) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, v.ID, v, "Updated Vehicle"); err != nil {
		return err
	}

	return nil
}

func (v *Vehicle) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, v.ID, v, "Deleted Vehicle"); err != nil {
		return err
	}

	return nil
}

func (c *Customer) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, c.ID, c, "Created Customer"); err != nil {
		return err
	}

	return nil
}

func (c *Customer) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, c.ID, c, "Updated Customer"); err != nil {
		return err
	}

	return nil
}

func (c *Customer) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, c.ID, c, "Deleted Customer"); err != nil {
		return err
	}

	return nil
}

func (c *PrintCustomer) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, c.ID, c, "Created PrintCustomer"); err != nil {
		return err
	}

	return nil
}

func (c *PrintCustomer) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, c.ID, c, "Updated PrintCustomer"); err != nil {
		return err
	}

	return nil
}

func (c *PrintCustomer) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, c.ID, c, "Deleted PrintCustomer"); err != nil {
		return err
	}

	return nil
}

func (s *SLALevel) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, s.ID, s, "Created SLALevel"); err != nil {
		return err
	}
	if err := s.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (s *SLALevel) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, s.ID, s, "Updated SLALevel"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (s *SLALevel) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, s.ID, s, "Deleted SLALevel"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (s *ServiceCategory) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, s.ID, s, "Created ServiceCategory"); err != nil {
		return err
	}
	if err := s.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (s *ServiceCategory) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, s.ID, s, "Updated ServiceCategory"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (s *ServiceCategory) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, s.ID, s, "Deleted ServiceCategory"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (s *ServiceItem) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, s.ID, s, "Created ServiceItem"); err != nil {
		return err
	}
	if err := s.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (s *ServiceItem) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, s.ID, s, "Updated ServiceItem"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (s *ServiceItem) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, s.ID, s, "Deleted ServiceItem"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(s); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceCategory) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, p.ID, p, "Created PrintServiceCategory"); err != nil {
		return err
	}
	if err := p.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceCategory) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, p.ID, p, "Updated PrintServiceCategory"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceCategory) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, p.ID, p, "Deleted PrintServiceCategory"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceItem) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, p.ID, p, "Created PrintServiceItem"); err != nil {
		return err
	}
	if err := p.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceItem) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, p.ID, p, "Updated PrintServiceItem"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (p *PrintServiceItem) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, p.ID, p, "Deleted PrintServiceItem"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (p *ProductSheet) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, p.ID, p, "Created ProductSheet"); err != nil {
		return err
	}
	if err := p.RemoveAllRedis(); err != nil {
		return err
	}

	return nil
}

func (p *ProductSheet) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, p.ID, p, "Updated ProductSheet"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (p *ProductSheet) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, p.ID, p, "Deleted ProductSheet"); err != nil {
		return err
	}
	if err := RemoveRedisBoth(p); err != nil {
		return err
	}

	return nil
}

func (c *CompanyInfo) AfterCreate(tx *gorm.DB) (err error) {
	if err := SaveHistoryCreate(tx, c.ID, c, "Created CompanyInfo"); err != nil {
		return err
	}

	return nil
}

func (c *CompanyInfo) BeforeUpdate(tx *gorm.DB) (err error) {
	if err := SaveHistoryUpdate(tx, c.ID, c, "Updated CompanyInfo"); err != nil {
		return err
	}
	if err := c.RemoveInstanceRedis(); err != nil {
		return err
	}

	return nil
}

func (c *CompanyInfo) AfterDelete(tx *gorm.DB) (err error) {
	if err := SaveHistoryDelete(tx, c.ID, c, "Deleted CompanyInfo"); err != nil {
		return err
	}
	if err := c.RemoveInstanceRedis(); err != nil {
		return err
	}

	return nil
}
