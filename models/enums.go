package models

import (
	"errors"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "urgent":
		return PriorityUrgent, nil
	default:
		return "", errors.New("invalid priority")
	}
}

type TicketStatus string

const (
	TicketStatusNew             TicketStatus = "new"
	TicketStatusAssigned        TicketStatus = "assigned"
	TicketStatusInProgress      TicketStatus = "in_progress"
	TicketStatusPendingCustomer TicketStatus = "pending_customer"
	TicketStatusResolved        TicketStatus = "resolved"
	TicketStatusClosed          TicketStatus = "closed"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	ticketStatuses := map[string]TicketStatus{
		"new":              TicketStatusNew,
		"assigned":         TicketStatusAssigned,
		"in_progress":      TicketStatusInProgress,
		"pending_customer": TicketStatusPendingCustomer,
		"resolved":         TicketStatusResolved,
		"closed":           TicketStatusClosed,
	}
	status, ok := ticketStatuses[s]
	if !ok {
		return "", errors.New("invalid ticket status")
	}
	return status, nil
}

// IsSettled reports whether the ticket has left the open phase.
func (s TicketStatus) IsSettled() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryAccount   TicketCategory = "account"
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryFeature   TicketCategory = "feature"
	TicketCategoryHardware  TicketCategory = "hardware"
	TicketCategorySoftware  TicketCategory = "software"
	TicketCategoryNetwork   TicketCategory = "network"
	TicketCategoryOther     TicketCategory = "other"
)

func ParseTicketCategory(s string) (TicketCategory, error) {
	ticketCategories := map[string]TicketCategory{
		"technical": TicketCategoryTechnical,
		"account":   TicketCategoryAccount,
		"billing":   TicketCategoryBilling,
		"feature":   TicketCategoryFeature,
		"hardware":  TicketCategoryHardware,
		"software":  TicketCategorySoftware,
		"network":   TicketCategoryNetwork,
		"other":     TicketCategoryOther,
	}
	category, ok := ticketCategories[s]
	if !ok {
		return "", errors.New("invalid ticket category")
	}
	return category, nil
}

type BidSheetStatus string

const (
	BidSheetStatusDraft    BidSheetStatus = "draft"
	BidSheetStatusSent     BidSheetStatus = "sent"
	BidSheetStatusAccepted BidSheetStatus = "accepted"
	BidSheetStatusRejected BidSheetStatus = "rejected"
	BidSheetStatusExpired  BidSheetStatus = "expired"
)

func ParseBidSheetStatus(s string) (BidSheetStatus, error) {
	switch s {
	case "draft":
		return BidSheetStatusDraft, nil
	case "sent":
		return BidSheetStatusSent, nil
	case "accepted":
		return BidSheetStatusAccepted, nil
	case "rejected":
		return BidSheetStatusRejected, nil
	case "expired":
		return BidSheetStatusExpired, nil
	default:
		return "", errors.New("invalid bid sheet status")
	}
}

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
	CustomerTypeNonProfit  CustomerType = "non_profit"
	CustomerTypeGovernment CustomerType = "government"
)

func ParseCustomerType(s string) (CustomerType, error) {
	switch s {
	case "individual":
		return CustomerTypeIndividual, nil
	case "business":
		return CustomerTypeBusiness, nil
	case "non_profit":
		return CustomerTypeNonProfit, nil
	case "government":
		return CustomerTypeGovernment, nil
	default:
		return "", errors.New("invalid customer type")
	}
}

type ContactMethod string

const (
	ContactMethodEmail ContactMethod = "email"
	ContactMethodPhone ContactMethod = "phone"
	ContactMethodText  ContactMethod = "text"
)

func ParseContactMethod(s string) (ContactMethod, error) {
	switch s {
	case "email":
		return ContactMethodEmail, nil
	case "phone":
		return ContactMethodPhone, nil
	case "text":
		return ContactMethodText, nil
	default:
		return "", errors.New("invalid contact method")
	}
}

type PrintUnitType string

const (
	PrintUnitTypeEach     PrintUnitType = "each"
	PrintUnitTypeSqFt     PrintUnitType = "sqft"
	PrintUnitTypeLinFt    PrintUnitType = "linft"
	PrintUnitTypeSheet    PrintUnitType = "sheet"
	PrintUnitTypeHour     PrintUnitType = "hour"
	PrintUnitTypeDay      PrintUnitType = "day"
	PrintUnitTypeProject  PrintUnitType = "project"
)

func ParsePrintUnitType(s string) (PrintUnitType, error) {
	printUnitTypes := map[string]PrintUnitType{
		"each":    PrintUnitTypeEach,
		"sqft":    PrintUnitTypeSqFt,
		"linft":   PrintUnitTypeLinFt,
		"sheet":   PrintUnitTypeSheet,
		"hour":    PrintUnitTypeHour,
		"day":     PrintUnitTypeDay,
		"project": PrintUnitTypeProject,
	}
	unitType, ok := printUnitTypes[s]
	if !ok {
		return "", errors.New("invalid print unit type")
	}
	return unitType, nil
}

type PaperType string

const (
	PaperTypeStandard  PaperType = "standard"
	PaperTypePremium   PaperType = "premium"
	PaperTypeCardstock PaperType = "cardstock"
	PaperTypeVinyl     PaperType = "vinyl"
	PaperTypeCanvas    PaperType = "canvas"
	PaperTypeFabric    PaperType = "fabric"
	PaperTypeMetal     PaperType = "metal"
	PaperTypeAcrylic   PaperType = "acrylic"
	PaperTypeFoamBoard PaperType = "foam_board"
	PaperTypeCoroplast PaperType = "coroplast"
	PaperTypeBanner    PaperType = "banner"
)

func ParsePaperType(s string) (PaperType, error) {
	paperTypes := map[string]PaperType{
		"standard":   PaperTypeStandard,
		"premium":    PaperTypePremium,
		"cardstock":  PaperTypeCardstock,
		"vinyl":      PaperTypeVinyl,
		"canvas":     PaperTypeCanvas,
		"fabric":     PaperTypeFabric,
		"metal":      PaperTypeMetal,
		"acrylic":    PaperTypeAcrylic,
		"foam_board": PaperTypeFoamBoard,
		"coroplast":  PaperTypeCoroplast,
		"banner":     PaperTypeBanner,
	}
	paperType, ok := paperTypes[s]
	if !ok {
		return "", errors.New("invalid paper type")
	}
	return paperType, nil
}

type FinishType string

const (
	FinishTypeNone        FinishType = "none"
	FinishTypeGloss       FinishType = "gloss"
	FinishTypeMatte       FinishType = "matte"
	FinishTypeSatin       FinishType = "satin"
	FinishTypeUVCoating   FinishType = "uv_coating"
	FinishTypeLaminated   FinishType = "laminated"
	FinishTypeEmbossed    FinishType = "embossed"
	FinishTypeFoilStamped FinishType = "foil_stamped"
)

func ParseFinishType(s string) (FinishType, error) {
	finishTypes := map[string]FinishType{
		"none":         FinishTypeNone,
		"gloss":        FinishTypeGloss,
		"matte":        FinishTypeMatte,
		"satin":        FinishTypeSatin,
		"uv_coating":   FinishTypeUVCoating,
		"laminated":    FinishTypeLaminated,
		"embossed":     FinishTypeEmbossed,
		"foil_stamped": FinishTypeFoilStamped,
	}
	finishType, ok := finishTypes[s]
	if !ok {
		return "", errors.New("invalid finish type")
	}
	return finishType, nil
}

type PrintEstimateStatus string

const (
	PrintEstimateStatusDraft        PrintEstimateStatus = "draft"
	PrintEstimateStatusSent         PrintEstimateStatus = "sent"
	PrintEstimateStatusApproved     PrintEstimateStatus = "approved"
	PrintEstimateStatusDeclined     PrintEstimateStatus = "declined"
	PrintEstimateStatusExpired      PrintEstimateStatus = "expired"
	PrintEstimateStatusInProduction PrintEstimateStatus = "in_production"
	PrintEstimateStatusCompleted    PrintEstimateStatus = "completed"
)

func ParsePrintEstimateStatus(s string) (PrintEstimateStatus, error) {
	printEstimateStatuses := map[string]PrintEstimateStatus{
		"draft":         PrintEstimateStatusDraft,
		"sent":          PrintEstimateStatusSent,
		"approved":      PrintEstimateStatusApproved,
		"declined":      PrintEstimateStatusDeclined,
		"expired":       PrintEstimateStatusExpired,
		"in_production": PrintEstimateStatusInProduction,
		"completed":     PrintEstimateStatusCompleted,
	}
	status, ok := printEstimateStatuses[s]
	if !ok {
		return "", errors.New("invalid print estimate status")
	}
	return status, nil
}

type ProductType string

const (
	ProductTypeBusinessCards   ProductType = "business_cards"
	ProductTypeBrochures       ProductType = "brochures"
	ProductTypeFlyers          ProductType = "flyers"
	ProductTypeBanners         ProductType = "banners"
	ProductTypeSigns           ProductType = "signs"
	ProductTypeVehicleGraphics ProductType = "vehicle_graphics"
	ProductTypePromotional     ProductType = "promotional"
	ProductTypeCustom          ProductType = "custom"
)

func ParseProductType(s string) (ProductType, error) {
	productTypes := map[string]ProductType{
		"business_cards":   ProductTypeBusinessCards,
		"brochures":        ProductTypeBrochures,
		"flyers":           ProductTypeFlyers,
		"banners":          ProductTypeBanners,
		"signs":            ProductTypeSigns,
		"vehicle_graphics": ProductTypeVehicleGraphics,
		"promotional":      ProductTypePromotional,
		"custom":           ProductTypeCustom,
	}
	productType, ok := productTypes[s]
	if !ok {
		return "", errors.New("invalid product type")
	}
	return productType, nil
}

type Department string

const (
	DepartmentTechnology  Department = "technology"
	DepartmentPrintDesign Department = "print_design"
)

func ParseDepartment(s string) (Department, error) {
	switch s {
	case "technology":
		return DepartmentTechnology, nil
	case "print_design":
		return DepartmentPrintDesign, nil
	default:
		return "", errors.New("invalid department")
	}
}

type PrimaryDepartment string

const (
	PrimaryDepartmentTechnology  PrimaryDepartment = "technology"
	PrimaryDepartmentPrintDesign PrimaryDepartment = "print_design"
	PrimaryDepartmentMaster      PrimaryDepartment = "master"
)

func ParsePrimaryDepartment(s string) (PrimaryDepartment, error) {
	switch s {
	case "technology":
		return PrimaryDepartmentTechnology, nil
	case "print_design":
		return PrimaryDepartmentPrintDesign, nil
	case "master":
		return PrimaryDepartmentMaster, nil
	default:
		return "", errors.New("invalid primary department")
	}
}

type CardStatus string

const (
	// Technology statuses
	CardStatusTechBacklog        CardStatus = "tech_backlog"
	CardStatusTechInProgress     CardStatus = "tech_in_progress"
	CardStatusTechAwaitingClient CardStatus = "tech_awaiting_client"
	CardStatusTechTesting        CardStatus = "tech_testing"
	CardStatusTechCompleted      CardStatus = "tech_completed"
	// Print & Design statuses
	CardStatusPrintDesignBrief    CardStatus = "print_design_brief"
	CardStatusPrintDesignPhase    CardStatus = "print_design_phase"
	CardStatusPrintClientApproval CardStatus = "print_client_approval"
	CardStatusPrintProduction     CardStatus = "print_production"
	CardStatusPrintQualityCheck   CardStatus = "print_quality_check"
	CardStatusPrintDelivered      CardStatus = "print_delivered"
	// Common statuses
	CardStatusOnHold    CardStatus = "on_hold"
	CardStatusCancelled CardStatus = "cancelled"
)

func ParseCardStatus(s string) (CardStatus, error) {
	cardStatuses := map[string]CardStatus{
		"tech_backlog":          CardStatusTechBacklog,
		"tech_in_progress":      CardStatusTechInProgress,
		"tech_awaiting_client":  CardStatusTechAwaitingClient,
		"tech_testing":          CardStatusTechTesting,
		"tech_completed":        CardStatusTechCompleted,
		"print_design_brief":    CardStatusPrintDesignBrief,
		"print_design_phase":    CardStatusPrintDesignPhase,
		"print_client_approval": CardStatusPrintClientApproval,
		"print_production":      CardStatusPrintProduction,
		"print_quality_check":   CardStatusPrintQualityCheck,
		"print_delivered":       CardStatusPrintDelivered,
		"on_hold":               CardStatusOnHold,
		"cancelled":             CardStatusCancelled,
	}
	status, ok := cardStatuses[s]
	if !ok {
		return "", errors.New("invalid card status")
	}
	return status, nil
}

// CardStatusesForDepartment returns the Kanban column order for a board.
func CardStatusesForDepartment(department Department) []CardStatus {
	if department == DepartmentPrintDesign {
		return []CardStatus{
			CardStatusPrintDesignBrief,
			CardStatusPrintDesignPhase,
			CardStatusPrintClientApproval,
			CardStatusPrintProduction,
			CardStatusPrintQualityCheck,
			CardStatusPrintDelivered,
			CardStatusOnHold,
			CardStatusCancelled,
		}
	}
	return []CardStatus{
		CardStatusTechBacklog,
		CardStatusTechInProgress,
		CardStatusTechAwaitingClient,
		CardStatusTechTesting,
		CardStatusTechCompleted,
		CardStatusOnHold,
		CardStatusCancelled,
	}
}

// IsTerminal reports whether a card status ends the work clock.
func (s CardStatus) IsTerminal() bool {
	return s == CardStatusTechCompleted || s == CardStatusPrintDelivered || s == CardStatusCancelled
}

type CommentType string

const (
	CommentTypeComment      CommentType = "comment"
	CommentTypeStatusChange CommentType = "status_change"
	CommentTypeAssignment   CommentType = "assignment"
	CommentTypeTimeLog      CommentType = "time_log"
	CommentTypeFileUpload   CommentType = "file_upload"
	CommentTypeSystem       CommentType = "system"
)

func ParseCommentType(s string) (CommentType, error) {
	commentTypes := map[string]CommentType{
		"comment":       CommentTypeComment,
		"status_change": CommentTypeStatusChange,
		"assignment":    CommentTypeAssignment,
		"time_log":      CommentTypeTimeLog,
		"file_upload":   CommentTypeFileUpload,
		"system":        CommentTypeSystem,
	}
	commentType, ok := commentTypes[s]
	if !ok {
		return "", errors.New("invalid comment type")
	}
	return commentType, nil
}

type VehicleStatus string

const (
	VehicleStatusActive       VehicleStatus = "active"
	VehicleStatusMaintenance  VehicleStatus = "maintenance"
	VehicleStatusOutOfService VehicleStatus = "out_of_service"
	VehicleStatusRetired      VehicleStatus = "retired"
)

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch s {
	case "active":
		return VehicleStatusActive, nil
	case "maintenance":
		return VehicleStatusMaintenance, nil
	case "out_of_service":
		return VehicleStatusOutOfService, nil
	case "retired":
		return VehicleStatusRetired, nil
	default:
		return "", errors.New("invalid vehicle status")
	}
}

type VehicleType string

const (
	VehicleTypeTruck     VehicleType = "truck"
	VehicleTypeVan       VehicleType = "van"
	VehicleTypeCar       VehicleType = "car"
	VehicleTypeTrailer   VehicleType = "trailer"
	VehicleTypeEquipment VehicleType = "equipment"
)

func ParseVehicleType(s string) (VehicleType, error) {
	switch s {
	case "truck":
		return VehicleTypeTruck, nil
	case "van":
		return VehicleTypeVan, nil
	case "car":
		return VehicleTypeCar, nil
	case "trailer":
		return VehicleTypeTrailer, nil
	case "equipment":
		return VehicleTypeEquipment, nil
	default:
		return "", errors.New("invalid vehicle type")
	}
}

type VehicleDepartment string

const (
	VehicleDepartmentTechnology  VehicleDepartment = "technology"
	VehicleDepartmentPrintDesign VehicleDepartment = "print_design"
	VehicleDepartmentShared      VehicleDepartment = "shared"
)

func ParseVehicleDepartment(s string) (VehicleDepartment, error) {
	switch s {
	case "technology":
		return VehicleDepartmentTechnology, nil
	case "print_design":
		return VehicleDepartmentPrintDesign, nil
	case "shared":
		return VehicleDepartmentShared, nil
	default:
		return "", errors.New("invalid vehicle department")
	}
}

type DropOffStatus string

const (
	DropOffStatusScheduled     DropOffStatus = "scheduled"
	DropOffStatusDroppedOff    DropOffStatus = "dropped_off"
	DropOffStatusInProgress    DropOffStatus = "in_progress"
	DropOffStatusAwaitingParts DropOffStatus = "awaiting_parts"
	DropOffStatusCompleted     DropOffStatus = "completed"
	DropOffStatusReadyPickup   DropOffStatus = "ready_pickup"
	DropOffStatusPickedUp      DropOffStatus = "picked_up"
	DropOffStatusCancelled     DropOffStatus = "cancelled"
)

func ParseDropOffStatus(s string) (DropOffStatus, error) {
	dropOffStatuses := map[string]DropOffStatus{
		"scheduled":      DropOffStatusScheduled,
		"dropped_off":    DropOffStatusDroppedOff,
		"in_progress":    DropOffStatusInProgress,
		"awaiting_parts": DropOffStatusAwaitingParts,
		"completed":      DropOffStatusCompleted,
		"ready_pickup":   DropOffStatusReadyPickup,
		"picked_up":      DropOffStatusPickedUp,
		"cancelled":      DropOffStatusCancelled,
	}
	status, ok := dropOffStatuses[s]
	if !ok {
		return "", errors.New("invalid drop off status")
	}
	return status, nil
}

type InstallType string

const (
	InstallTypeOnsite   InstallType = "onsite"
	InstallTypeShop     InstallType = "shop"
	InstallTypeMobile   InstallType = "mobile"
	InstallTypeDelivery InstallType = "delivery"
)

func ParseInstallType(s string) (InstallType, error) {
	switch s {
	case "onsite":
		return InstallTypeOnsite, nil
	case "shop":
		return InstallTypeShop, nil
	case "mobile":
		return InstallTypeMobile, nil
	case "delivery":
		return InstallTypeDelivery, nil
	default:
		return "", errors.New("invalid install type")
	}
}

type InstallStatus string

const (
	InstallStatusScheduled      InstallStatus = "scheduled"
	InstallStatusConfirmed      InstallStatus = "confirmed"
	InstallStatusTeamDispatched InstallStatus = "team_dispatched"
	InstallStatusOnSite         InstallStatus = "on_site"
	InstallStatusInProgress     InstallStatus = "in_progress"
	InstallStatusCompleted      InstallStatus = "completed"
	InstallStatusClientSignoff  InstallStatus = "client_signoff"
	InstallStatusCancelled      InstallStatus = "cancelled"
	InstallStatusRescheduled    InstallStatus = "rescheduled"
)

func ParseInstallStatus(s string) (InstallStatus, error) {
	installStatuses := map[string]InstallStatus{
		"scheduled":       InstallStatusScheduled,
		"confirmed":       InstallStatusConfirmed,
		"team_dispatched": InstallStatusTeamDispatched,
		"on_site":         InstallStatusOnSite,
		"in_progress":     InstallStatusInProgress,
		"completed":       InstallStatusCompleted,
		"client_signoff":  InstallStatusClientSignoff,
		"cancelled":       InstallStatusCancelled,
		"rescheduled":     InstallStatusRescheduled,
	}
	status, ok := installStatuses[s]
	if !ok {
		return "", errors.New("invalid install status")
	}
	return status, nil
}

type PaymentTerms string

const (
	PaymentTermsNet15             PaymentTerms = "Net15"
	PaymentTermsNet30             PaymentTerms = "Net30"
	PaymentTermsNet45             PaymentTerms = "Net45"
	PaymentTermsNet60             PaymentTerms = "Net60"
	PaymentTermsDueEndOfMonth     PaymentTerms = "DueMonthEnd"
	PaymentTermsDueEndOfNextMonth PaymentTerms = "DueNextMonthEnd"
	PaymentTermsDueOnReceipt      PaymentTerms = "DueOnReceipt"
	PaymentTermsCustom            PaymentTerms = "Custom"
)

func ParsePaymentTerms(s string) (PaymentTerms, error) {
	paymentTerms := map[string]PaymentTerms{
		"Net15":           PaymentTermsNet15,
		"Net30":           PaymentTermsNet30,
		"Net45":           PaymentTermsNet45,
		"Net60":           PaymentTermsNet60,
		"DueMonthEnd":     PaymentTermsDueEndOfMonth,
		"DueNextMonthEnd": PaymentTermsDueEndOfNextMonth,
		"DueOnReceipt":    PaymentTermsDueOnReceipt,
		"Custom":          PaymentTermsCustom,
	}
	terms, ok := paymentTerms[s]
	if !ok {
		return "", errors.New("invalid payment terms")
	}
	return terms, nil
}

type UserRole string

const (
	UserRoleAdmin UserRole = "A"
	UserRoleStaff UserRole = "S"
)

func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case "A":
		return UserRoleAdmin, nil
	case "S":
		return UserRoleStaff, nil
	default:
		return "", errors.New("invalid user role")
	}
}
