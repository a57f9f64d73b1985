package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
)

type Ticket struct {
	ID              int             `gorm:"primary_key" json:"id"`
	TicketNumber    string          `gorm:"size:20;not null;unique" json:"ticket_number"`
	SequenceNo      decimal.Decimal `gorm:"type:decimal(15);not null" json:"sequence_no"`
	Title           string          `gorm:"size:200;not null" json:"title" binding:"required"`
	Description     string          `gorm:"type:text" json:"description" binding:"required"`
	CustomerName    string          `gorm:"size:100;not null" json:"customer_name" binding:"required"`
	CustomerEmail   string          `gorm:"size:100;not null" json:"customer_email" binding:"required"`
	CustomerPhone   string          `gorm:"size:20" json:"customer_phone"`
	Category        TicketCategory  `gorm:"type:enum('technical', 'account', 'billing', 'feature', 'hardware', 'software', 'network', 'other');not null" json:"category" binding:"required"`
	Priority        Priority        `gorm:"type:enum('low', 'medium', 'high', 'urgent');not null" json:"priority" binding:"required"`
	Status          TicketStatus    `gorm:"type:enum('new', 'assigned', 'in_progress', 'pending_customer', 'resolved', 'closed');default:new" json:"status"`
	AssignedToId    int             `gorm:"index" json:"assigned_to_id"`
	CreatedById     int             `json:"created_by_id"`
	FirstResponseAt *time.Time      `json:"first_response_at"`
	ResolvedAt      *time.Time      `json:"resolved_at"`
	ClosedAt        *time.Time      `json:"closed_at"`
	ResponseDue     *time.Time      `json:"response_due"`
	ResolutionDue   *time.Time      `json:"resolution_due"`
	Notes           []*TicketNote   `json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTicket struct {
	Title         string         `json:"title" binding:"required"`
	Description   string         `json:"description" binding:"required"`
	CustomerName  string         `json:"customer_name" binding:"required"`
	CustomerEmail string         `json:"customer_email" binding:"required"`
	CustomerPhone string         `json:"customer_phone"`
	Category      TicketCategory `json:"category" binding:"required"`
	Priority      Priority       `json:"priority" binding:"required"`
	AssignedToId  int            `json:"assigned_to_id"`
}

type TicketsEdge Edge[Ticket]

type TicketsConnection struct {
	PageInfo *PageInfo      `json:"pageInfo"`
	Edges    []*TicketsEdge `json:"edges"`
}

func (obj Ticket) GetId() int {
	return obj.ID
}

// implements Node
func (obj Ticket) GetCursor() string {
	return obj.CreatedAt.String()
}

// implements ModelChangeLocker
func (obj Ticket) CheckChangeLock(ctx context.Context) error {
	return nil
}

// overdue predicates freeze once the milestone is stamped
func (t *Ticket) IsResponseOverdue(now time.Time) bool {
	if t.FirstResponseAt != nil || t.ResponseDue == nil {
		return false
	}
	return now.After(*t.ResponseDue)
}

func (t *Ticket) IsResolutionOverdue(now time.Time) bool {
	if t.ResolvedAt != nil || t.ResolutionDue == nil {
		return false
	}
	return now.After(*t.ResolutionDue)
}

func (t *Ticket) TimeToResponse(now time.Time) *time.Duration {
	if t.FirstResponseAt != nil || t.ResponseDue == nil {
		return nil
	}
	remaining := t.ResponseDue.Sub(now)
	return &remaining
}

func (t *Ticket) TimeToResolution(now time.Time) *time.Duration {
	if t.ResolvedAt != nil || t.ResolutionDue == nil {
		return nil
	}
	remaining := t.ResolutionDue.Sub(now)
	return &remaining
}

func (t *Ticket) ResponseSLAMet() bool {
	if t.FirstResponseAt == nil || t.ResponseDue == nil {
		return false
	}
	return !t.FirstResponseAt.After(*t.ResponseDue)
}

func (t *Ticket) ResolutionSLAMet() bool {
	if t.ResolvedAt == nil || t.ResolutionDue == nil {
		return false
	}
	return !t.ResolvedAt.After(*t.ResolutionDue)
}

// verdict for settled tickets, open tickets read as empty
func (t *Ticket) SLAStatus() string {
	if !t.Status.IsSettled() {
		return ""
	}
	if t.ResponseDue == nil || t.ResolutionDue == nil ||
		t.FirstResponseAt == nil || t.ResolvedAt == nil {
		return "Incomplete Data"
	}
	if t.ResponseSLAMet() && t.ResolutionSLAMet() {
		return "SLA Met"
	}
	return "SLA Missed"
}

// deadlines come from the level in force at creation, missing level leaves them null
func (t *Ticket) applySLADeadlines(ctx context.Context) error {
	slaLevel, err := getSLALevelByPriority(ctx, t.Priority)
	if err != nil {
		return err
	}
	if slaLevel == nil {
		return nil
	}
	responseDue := t.CreatedAt.Add(time.Duration(slaLevel.ResponseTimeHours) * time.Hour)
	resolutionDue := t.CreatedAt.Add(time.Duration(slaLevel.ResolutionTimeHours) * time.Hour)
	t.ResponseDue = &responseDue
	t.ResolutionDue = &resolutionDue
	return nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTicket) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Ticket](ctx, id); err != nil {
			return err
		}
	}
	if _, err := ParseTicketCategory(string(input.Category)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(input.Priority)); err != nil {
		return err
	}
	if !utils.IsValidEmail(input.CustomerEmail) {
		return errors.New("invalid customer email")
	}
	// exists assignee
	if input.AssignedToId > 0 {
		if err := utils.ValidateResourceId[User](ctx, input.AssignedToId); err != nil {
			return errors.New("assigned user not found")
		}
	}
	return nil
}

func CreateTicket(ctx context.Context, input *NewTicket) (*Ticket, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	ticket := Ticket{
		Title:         input.Title,
		Description:   input.Description,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        TicketStatusNew,
		AssignedToId:  input.AssignedToId,
		CreatedById:   userId,
		CreatedAt:     time.Now(),
	}
	if ticket.AssignedToId > 0 {
		ticket.Status = TicketStatusAssigned
	}

	if err := ticket.applySLADeadlines(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	seqNo, err := utils.GetSequence[Ticket](ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	ticket.SequenceNo = decimal.NewFromInt(seqNo)
	ticket.TicketNumber = fmt.Sprintf("TK-%06d", seqNo)

	err = tx.WithContext(ctx).Create(&ticket).Error
	if err != nil {
		tx.Rollback()
		if isDuplicateKeyErr(err) {
			return nil, ErrorNumberConflict
		}
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &ticket, nil
}

// deadlines stay as issued even when the priority changes
func UpdateTicket(ctx context.Context, id int, input *NewTicket) (*Ticket, error) {

	beforeUpdate, err := utils.FetchModelForChange[Ticket](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(&beforeUpdate).Updates(map[string]interface{}{
		"Title":         input.Title,
		"Description":   input.Description,
		"CustomerName":  input.CustomerName,
		"CustomerEmail": input.CustomerEmail,
		"CustomerPhone": input.CustomerPhone,
		"Category":      input.Category,
		"Priority":      input.Priority,
		"AssignedToId":  input.AssignedToId,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Ticket](ctx, id)
}

func UpdateTicketStatus(ctx context.Context, id int, status TicketStatus) (*Ticket, error) {

	if _, err := ParseTicketStatus(string(status)); err != nil {
		return nil, err
	}

	beforeUpdate, err := utils.FetchModelForChange[Ticket](ctx, id)
	if err != nil {
		return nil, err
	}
	if beforeUpdate.Status == status {
		return beforeUpdate, nil
	}
	if status == TicketStatusAssigned && beforeUpdate.AssignedToId == 0 {
		return nil, errors.New("ticket has no assignee")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"Status": status,
	}
	switch status {
	case TicketStatusResolved:
		if beforeUpdate.ResolvedAt == nil {
			updates["ResolvedAt"] = now
		}
	case TicketStatusClosed:
		updates["ClosedAt"] = now
		if beforeUpdate.ResolvedAt == nil {
			updates["ResolvedAt"] = now
		}
	}
	// reopening clears the settlement stamps
	if beforeUpdate.Status.IsSettled() && !status.IsSettled() {
		updates["ResolvedAt"] = nil
		updates["ClosedAt"] = nil
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Ticket](ctx, id)
}

func AssignTicket(ctx context.Context, id int, userId int) (*Ticket, error) {

	beforeUpdate, err := utils.FetchModelForChange[Ticket](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[User](ctx, userId); err != nil {
		return nil, errors.New("assigned user not found")
	}

	updates := map[string]interface{}{
		"AssignedToId": userId,
	}
	if beforeUpdate.Status == TicketStatusNew {
		updates["Status"] = TicketStatusAssigned
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Ticket](ctx, id)
}

func DeleteTicket(ctx context.Context, id int) (*Ticket, error) {

	result, err := utils.FetchModelForChange[Ticket](ctx, id, "Notes")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	// notes go with the ticket
	if err := tx.WithContext(ctx).Where("ticket_id = ?", id).Delete(&TicketNote{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	result.Notes = nil
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetTicket(ctx context.Context, id int) (*Ticket, error) {

	return utils.FetchModel[Ticket](ctx, id, "Notes")
}

func GetTickets(ctx context.Context,
	status *TicketStatus,
	priority *Priority,
	category *TicketCategory,
	assignedToId *int,
	customerEmail *string,
	search *string) ([]*Ticket, error) {

	db := config.GetDB()
	var results []*Ticket

	dbCtx := db.WithContext(ctx).Model(&Ticket{})
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if priority != nil {
		dbCtx = dbCtx.Where("priority = ?", *priority)
	}
	if category != nil {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	if assignedToId != nil {
		dbCtx = dbCtx.Where("assigned_to_id = ?", *assignedToId)
	}
	if customerEmail != nil && len(*customerEmail) > 0 {
		dbCtx = dbCtx.Where("customer_email = ?", *customerEmail)
	}
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where(
			db.Where("ticket_number LIKE ?", "%"+*search+"%").
				Or("title LIKE ?", "%"+*search+"%").
				Or("customer_name LIKE ?", "%"+*search+"%"))
	}

	if err := dbCtx.Order("created_at DESC").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateTicket(ctx context.Context,
	limit *int,
	after *string,
	status *TicketStatus,
	priority *Priority,
	assignedToId *int) (*TicketsConnection, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Ticket{})

	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if priority != nil {
		dbCtx = dbCtx.Where("priority = ?", *priority)
	}
	if assignedToId != nil {
		dbCtx = dbCtx.Where("assigned_to_id = ?", *assignedToId)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Ticket](dbCtx, *limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}
	var ticketsConnection TicketsConnection
	ticketsConnection.PageInfo = pageInfo
	for _, edge := range edges {
		ticketsEdge := TicketsEdge(edge)
		ticketsConnection.Edges = append(ticketsConnection.Edges, &ticketsEdge)
	}

	return &ticketsConnection, err
}

// open tickets already past either deadline, for the escalation sweep
func GetOverdueTickets(ctx context.Context) ([]*Ticket, error) {

	db := config.GetDB()
	var results []*Ticket
	now := time.Now()

	dbCtx := db.WithContext(ctx).Model(&Ticket{}).
		Where("status NOT IN ?", []TicketStatus{TicketStatusResolved, TicketStatusClosed}).
		Where(
			db.Where("first_response_at IS NULL AND response_due IS NOT NULL AND response_due < ?", now).
				Or("resolved_at IS NULL AND resolution_due IS NOT NULL AND resolution_due < ?", now))

	if err := dbCtx.Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
