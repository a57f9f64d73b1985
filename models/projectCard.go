package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"bitbucket.org/bluelinetech/blt_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectCard is a Kanban card on one of the two department boards. A card can
// point back to the bid sheet or print estimate it came from, one to one.
type ProjectCard struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	Title              string          `gorm:"size:200;not null" json:"title" binding:"required"`
	Description        string          `gorm:"type:text" json:"description"`
	Department         Department      `gorm:"type:enum('technology', 'print_design');not null" json:"department" binding:"required"`
	Status             CardStatus      `gorm:"type:enum('tech_backlog', 'tech_in_progress', 'tech_awaiting_client', 'tech_testing', 'tech_completed', 'print_design_brief', 'print_design_phase', 'print_client_approval', 'print_production', 'print_quality_check', 'print_delivered', 'on_hold', 'cancelled');not null" json:"status"`
	Priority           Priority        `gorm:"type:enum('low', 'medium', 'high', 'urgent');default:medium" json:"priority"`
	AssignedToId       int             `gorm:"index" json:"assigned_to_id"`
	CreatedById        int             `json:"created_by_id"`
	BidSheetId         *int            `gorm:"unique" json:"bid_sheet_id"`
	BidSheet           *BidSheet       `json:"bid_sheet,omitempty"`
	TechCustomerId     *int            `gorm:"index" json:"tech_customer_id"`
	TechCustomer       *Customer       `gorm:"foreignKey:TechCustomerId" json:"tech_customer,omitempty"`
	PrintEstimateId    *int            `gorm:"unique" json:"print_estimate_id"`
	PrintEstimate      *PrintEstimate  `json:"print_estimate,omitempty"`
	PrintCustomerId    *int            `gorm:"index" json:"print_customer_id"`
	PrintCustomer      *PrintCustomer  `gorm:"foreignKey:PrintCustomerId" json:"print_customer,omitempty"`
	EstimatedHours     decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"estimated_hours"`
	ActualHours        decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"actual_hours"`
	BillableHours      decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"billable_hours"`
	SLADueDate         *time.Time      `json:"sla_due_date"`
	SLAHours           int             `gorm:"not null;default:24" json:"sla_hours"`
	SLABreached        *bool           `gorm:"not null;default:false" json:"sla_breached"`
	SLABreachReason    string          `gorm:"type:text" json:"sla_breach_reason"`
	StartedAt          *time.Time      `json:"started_at"`
	CompletedAt        *time.Time      `json:"completed_at"`
	SortOrder          int             `gorm:"default:0" json:"sort_order"`
	ProgressPercentage int             `gorm:"default:0" json:"progress_percentage"`
	Comments           []*CardComment  `gorm:"foreignKey:CardId" json:"comments"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProjectCard struct {
	Title              string          `json:"title" binding:"required"`
	Description        string          `json:"description"`
	Department         Department      `json:"department" binding:"required"`
	Status             CardStatus      `json:"status"`
	Priority           Priority        `json:"priority"`
	AssignedToId       int             `json:"assigned_to_id"`
	BidSheetId         *int            `json:"bid_sheet_id"`
	TechCustomerId     *int            `json:"tech_customer_id"`
	PrintEstimateId    *int            `json:"print_estimate_id"`
	PrintCustomerId    *int            `json:"print_customer_id"`
	EstimatedHours     decimal.Decimal `json:"estimated_hours"`
	SLAHours           *int            `json:"sla_hours"`
	SortOrder          int             `json:"sort_order"`
	ProgressPercentage int             `json:"progress_percentage"`
}

type ProjectCardsEdge Edge[ProjectCard]

type ProjectCardsConnection struct {
	PageInfo *PageInfo           `json:"pageInfo"`
	Edges    []*ProjectCardsEdge `json:"edges"`
}

// KanbanColumn is one board column in department order with its cards.
type KanbanColumn struct {
	Status CardStatus     `json:"status"`
	Cards  []*ProjectCard `json:"cards"`
}

type KanbanBoard struct {
	Department Department      `json:"department"`
	Columns    []*KanbanColumn `json:"columns"`
}

func (obj ProjectCard) GetId() int {
	return obj.ID
}

// implements Node
func (obj ProjectCard) GetCursor() string {
	return obj.CreatedAt.String()
}

// implements ModelChangeLocker
func (obj ProjectCard) CheckChangeLock(ctx context.Context) error {
	return nil
}

// CustomerName resolves whichever side of the house owns the card.
func (c *ProjectCard) CustomerName() string {
	if c.TechCustomer != nil {
		return c.TechCustomer.Name
	}
	if c.PrintCustomer != nil {
		return c.PrintCustomer.Name
	}
	return "No Customer"
}

// the clock is set once at creation, zero hours carries no clock
func (c *ProjectCard) applySLADueDate() {
	if c.SLADueDate != nil || c.SLAHours <= 0 {
		return
	}
	dueDate := c.CreatedAt.Add(time.Duration(c.SLAHours) * time.Hour)
	c.SLADueDate = &dueDate
}

// overdue stops mattering once the card is completed
func (c *ProjectCard) IsOverdue(now time.Time) bool {
	if c.SLADueDate == nil || c.CompletedAt != nil {
		return false
	}
	return now.After(*c.SLADueDate)
}

// TimeRemaining is the time left on the clock, clamped at zero.
func (c *ProjectCard) TimeRemaining(now time.Time) *time.Duration {
	if c.SLADueDate == nil || c.CompletedAt != nil {
		return nil
	}
	remaining := c.SLADueDate.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// CheckSLA latches the breach flag when the card is observed overdue and
// reports whether this observation flipped it. The latch never resets, even
// if the due date later moves.
func (c *ProjectCard) CheckSLA(now time.Time) bool {
	if !c.IsOverdue(now) {
		return false
	}
	if c.SLABreached != nil && *c.SLABreached {
		return false
	}
	c.SLABreached = utils.NewTrue()
	return true
}

// a card's status must come from its own department's column set
func statusInDepartment(department Department, status CardStatus) bool {
	for _, s := range CardStatusesForDepartment(department) {
		if s == status {
			return true
		}
	}
	return false
}

// stamps follow the column: the first move off the entry column starts the
// card, the finish column completes it, leaving the finish column re-opens it
func applyCardStatusStamps(card *ProjectCard, status CardStatus, now time.Time, updates map[string]interface{}) {
	updates["Status"] = status

	entry := CardStatusesForDepartment(card.Department)[0]
	if card.StartedAt == nil && status != entry &&
		status != CardStatusOnHold && status != CardStatusCancelled {
		updates["StartedAt"] = now
	}
	finished := status == CardStatusTechCompleted || status == CardStatusPrintDelivered
	wasFinished := card.Status == CardStatusTechCompleted || card.Status == CardStatusPrintDelivered
	if finished && card.CompletedAt == nil {
		updates["CompletedAt"] = now
	}
	if wasFinished && !finished {
		updates["CompletedAt"] = nil
	}
}

// the latch is evaluated on every save against the state being written
func latchSLABreach(card *ProjectCard, updates map[string]interface{}, now time.Time) {
	if card.SLABreached != nil && *card.SLABreached {
		return
	}
	completedAt := card.CompletedAt
	if v, ok := updates["CompletedAt"]; ok {
		t, isTime := v.(time.Time)
		if isTime {
			completedAt = &t
		} else {
			completedAt = nil
		}
	}
	if card.SLADueDate == nil || completedAt != nil {
		return
	}
	if now.After(*card.SLADueDate) {
		updates["SLABreached"] = true
	}
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProjectCard) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[ProjectCard](ctx, id); err != nil {
			return err
		}
	}
	if _, err := ParseDepartment(string(input.Department)); err != nil {
		return err
	}
	if input.Status != "" {
		if _, err := ParseCardStatus(string(input.Status)); err != nil {
			return err
		}
		if !statusInDepartment(input.Department, input.Status) {
			return fmt.Errorf("status %s does not belong to the %s board", input.Status, input.Department)
		}
	}
	if input.Priority != "" {
		if _, err := ParsePriority(string(input.Priority)); err != nil {
			return err
		}
	}
	if input.AssignedToId > 0 {
		if err := utils.ValidateResourceId[User](ctx, input.AssignedToId); err != nil {
			return errors.New("assigned user not found")
		}
	}
	if input.BidSheetId != nil {
		if err := utils.ValidateResourceId[BidSheet](ctx, *input.BidSheetId); err != nil {
			return errors.New("bid sheet not found")
		}
	}
	if input.TechCustomerId != nil {
		if err := utils.ValidateResourceId[Customer](ctx, *input.TechCustomerId); err != nil {
			return errors.New("customer not found")
		}
	}
	if input.PrintEstimateId != nil {
		if err := utils.ValidateResourceId[PrintEstimate](ctx, *input.PrintEstimateId); err != nil {
			return errors.New("print estimate not found")
		}
	}
	if input.PrintCustomerId != nil {
		if err := utils.ValidateResourceId[PrintCustomer](ctx, *input.PrintCustomerId); err != nil {
			return errors.New("print customer not found")
		}
	}
	if input.EstimatedHours.IsNegative() {
		return errors.New("estimated hours must not be negative")
	}
	if input.SLAHours != nil && *input.SLAHours < 0 {
		return errors.New("sla hours must not be negative")
	}
	if input.ProgressPercentage < 0 || input.ProgressPercentage > 100 {
		return errors.New("progress percentage must be between 0 and 100")
	}
	return nil
}

func CreateProjectCard(ctx context.Context, input *NewProjectCard) (*ProjectCard, error) {

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	status := input.Status
	if status == "" {
		status = CardStatusesForDepartment(input.Department)[0]
	}
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	card := ProjectCard{
		Title:              input.Title,
		Description:        input.Description,
		Department:         input.Department,
		Status:             status,
		Priority:           priority,
		AssignedToId:       input.AssignedToId,
		CreatedById:        userId,
		BidSheetId:         input.BidSheetId,
		TechCustomerId:     input.TechCustomerId,
		PrintEstimateId:    input.PrintEstimateId,
		PrintCustomerId:    input.PrintCustomerId,
		EstimatedHours:     input.EstimatedHours,
		SLAHours:           utils.DereferencePtr(input.SLAHours, 24),
		SLABreached:        utils.NewFalse(),
		SortOrder:          input.SortOrder,
		ProgressPercentage: input.ProgressPercentage,
		CreatedAt:          time.Now(),
	}
	card.applySLADueDate()
	card.CheckSLA(time.Now())

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&card).Error; err != nil {
		return nil, err
	}

	return &card, nil
}

// UpdateProjectCard edits the card fields. A status carried in the input goes
// through the same stamping as a board move. The due date is set once at
// creation, later hour changes do not move it.
func UpdateProjectCard(ctx context.Context, id int, input *NewProjectCard) (*ProjectCard, error) {

	beforeUpdate, err := utils.FetchModelForChange[ProjectCard](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"Title":              input.Title,
		"Description":        input.Description,
		"Department":         input.Department,
		"Priority":           input.Priority,
		"AssignedToId":       input.AssignedToId,
		"BidSheetId":         input.BidSheetId,
		"TechCustomerId":     input.TechCustomerId,
		"PrintEstimateId":    input.PrintEstimateId,
		"PrintCustomerId":    input.PrintCustomerId,
		"EstimatedHours":     input.EstimatedHours,
		"SLAHours":           utils.DereferencePtr(input.SLAHours, beforeUpdate.SLAHours),
		"SortOrder":          input.SortOrder,
		"ProgressPercentage": input.ProgressPercentage,
	}
	if input.Status != "" && input.Status != beforeUpdate.Status {
		applyCardStatusStamps(beforeUpdate, input.Status, now, updates)
	}
	latchSLABreach(beforeUpdate, updates, now)

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[ProjectCard](ctx, id, "TechCustomer", "PrintCustomer")
}

// MoveProjectCard is the board drag: new column, new position. The move
// itself goes on the card's activity log.
func MoveProjectCard(ctx context.Context, id int, status CardStatus, sortOrder int) (*ProjectCard, error) {

	if _, err := ParseCardStatus(string(status)); err != nil {
		return nil, err
	}

	beforeUpdate, err := utils.FetchModelForChange[ProjectCard](ctx, id)
	if err != nil {
		return nil, err
	}
	if !statusInDepartment(beforeUpdate.Department, status) {
		return nil, fmt.Errorf("status %s does not belong to the %s board", status, beforeUpdate.Department)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"SortOrder": sortOrder,
	}
	moved := status != beforeUpdate.Status
	if moved {
		applyCardStatusStamps(beforeUpdate, status, now, updates)
	}
	latchSLABreach(beforeUpdate, updates, now)

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if moved {
		content := fmt.Sprintf("moved from %s to %s", beforeUpdate.Status, status)
		if err := logCardActivity(ctx, tx, id, CommentTypeStatusChange, content); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[ProjectCard](ctx, id, "TechCustomer", "PrintCustomer")
}

func AssignProjectCard(ctx context.Context, id int, userId int) (*ProjectCard, error) {

	beforeUpdate, err := utils.FetchModelForChange[ProjectCard](ctx, id)
	if err != nil {
		return nil, err
	}
	assignee, err := utils.FetchModel[User](ctx, userId)
	if err != nil {
		return nil, errors.New("assigned user not found")
	}
	if beforeUpdate.AssignedToId == userId {
		return beforeUpdate, nil
	}

	updates := map[string]interface{}{
		"AssignedToId": userId,
	}
	latchSLABreach(beforeUpdate, updates, time.Now())

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&beforeUpdate).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	content := fmt.Sprintf("assigned to %s", assignee.Name)
	if err := logCardActivity(ctx, tx, id, CommentTypeAssignment, content); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[ProjectCard](ctx, id, "TechCustomer", "PrintCustomer")
}

func DeleteProjectCard(ctx context.Context, id int) (*ProjectCard, error) {

	result, err := utils.FetchModelForChange[ProjectCard](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	// the activity log, drop-offs and installations go with the card
	if err := tx.WithContext(ctx).Where("card_id = ?", id).Delete(&CardComment{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("project_card_id = ?", id).Delete(&VehicleDropOff{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// team rows first, then their schedules
	err = tx.WithContext(ctx).Exec(
		"DELETE FROM installation_team_members WHERE installation_schedule_id IN (SELECT id FROM installation_schedules WHERE project_card_id = ?)",
		id).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("project_card_id = ?", id).Delete(&InstallationSchedule{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetProjectCard(ctx context.Context, id int) (*ProjectCard, error) {

	return utils.FetchModel[ProjectCard](ctx, id, "TechCustomer", "PrintCustomer", "Comments")
}

func GetProjectCards(ctx context.Context,
	department *Department,
	status *CardStatus,
	priority *Priority,
	assignedToId *int,
	search *string) ([]*ProjectCard, error) {

	db := config.GetDB()
	var results []*ProjectCard

	dbCtx := db.WithContext(ctx).Model(&ProjectCard{}).
		Preload("TechCustomer").Preload("PrintCustomer")
	if department != nil {
		dbCtx = dbCtx.Where("department = ?", *department)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if priority != nil {
		dbCtx = dbCtx.Where("priority = ?", *priority)
	}
	if assignedToId != nil {
		dbCtx = dbCtx.Where("assigned_to_id = ?", *assignedToId)
	}
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where("title LIKE ?", "%"+*search+"%")
	}

	err := dbCtx.Order("sort_order").Order("priority DESC").Order("created_at").
		Limit(config.SearchLimit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetKanbanBoard loads a department's board in one query, grouped into its
// columns in board order. Urgent work floats to the top of each column.
func GetKanbanBoard(ctx context.Context, department Department) (*KanbanBoard, error) {

	if _, err := ParseDepartment(string(department)); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var cards []*ProjectCard
	err := db.WithContext(ctx).Model(&ProjectCard{}).
		Where("department = ?", department).
		Preload("TechCustomer").Preload("PrintCustomer").
		Order("sort_order").Order("priority DESC").Order("created_at").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[CardStatus][]*ProjectCard)
	for _, card := range cards {
		byStatus[card.Status] = append(byStatus[card.Status], card)
	}

	board := KanbanBoard{Department: department}
	for _, status := range CardStatusesForDepartment(department) {
		board.Columns = append(board.Columns, &KanbanColumn{
			Status: status,
			Cards:  byStatus[status],
		})
	}
	return &board, nil
}

func PaginateProjectCard(ctx context.Context,
	limit *int,
	after *string,
	department *Department,
	status *CardStatus,
	assignedToId *int) (*ProjectCardsConnection, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&ProjectCard{})

	if department != nil {
		dbCtx = dbCtx.Where("department = ?", *department)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if assignedToId != nil {
		dbCtx = dbCtx.Where("assigned_to_id = ?", *assignedToId)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[ProjectCard](dbCtx, *limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}
	var projectCardsConnection ProjectCardsConnection
	projectCardsConnection.PageInfo = pageInfo
	for _, edge := range edges {
		projectCardsEdge := ProjectCardsEdge(edge)
		projectCardsConnection.Edges = append(projectCardsConnection.Edges, &projectCardsEdge)
	}

	return &projectCardsConnection, err
}

// MarkBreachedProjectCards latches cards that went overdue with nobody
// touching them. Meant for the periodic sweep.
func MarkBreachedProjectCards(ctx context.Context) (int64, error) {

	// no user on the sweep, the audit hooks stay out of it
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&ProjectCard{}).
		Session(&gorm.Session{SkipHooks: true}).
		Where("sla_breached = ?", false).
		Where("completed_at IS NULL").
		Where("sla_due_date IS NOT NULL AND sla_due_date < ?", time.Now()).
		Update("SLABreached", true)
	return result.RowsAffected, result.Error
}
