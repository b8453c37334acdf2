package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Facility DTOs
// =============================================================================

// CreateFacilityRequest represents a request to create a new facility
type CreateFacilityRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	FacilityType      string           `json:"facility_type" binding:"required,oneof=hospice home_health palliative hybrid"`
	OwnershipType     string           `json:"ownership_type" binding:"omitempty,oneof=for_profit non_profit hospital_affiliated independent"`
	CensusSize        *int             `json:"census_size" binding:"omitempty,min=0"`
	AnnualRevenue     *decimal.Decimal `json:"annual_revenue"`
	AddressLine1      string           `json:"address_line1" binding:"max=200"`
	AddressLine2      string           `json:"address_line2" binding:"max=200"`
	City              string           `json:"city" binding:"max=100"`
	State             string           `json:"state" binding:"omitempty,len=2"`
	Zip               string           `json:"zip" binding:"max=10"`
	CCN               string           `json:"ccn" binding:"max=20"`
	CurrentSoftware   string           `json:"current_software" binding:"max=100"`
	ContractRenewalAt *time.Time       `json:"contract_renewal_at"`
	Notes             string           `json:"notes"`
}

// UpdateFacilityRequest represents a request to update a facility
type UpdateFacilityRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	FacilityType      *string          `json:"facility_type" binding:"omitempty,oneof=hospice home_health palliative hybrid"`
	OwnershipType     *string          `json:"ownership_type" binding:"omitempty,oneof=for_profit non_profit hospital_affiliated independent"`
	CensusSize        *int             `json:"census_size" binding:"omitempty,min=0"`
	AnnualRevenue     *decimal.Decimal `json:"annual_revenue"`
	AddressLine1      *string          `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2      *string          `json:"address_line2" binding:"omitempty,max=200"`
	City              *string          `json:"city" binding:"omitempty,max=100"`
	State             *string          `json:"state" binding:"omitempty,len=2"`
	Zip               *string          `json:"zip" binding:"omitempty,max=10"`
	CCN               *string          `json:"ccn" binding:"omitempty,max=20"`
	CurrentSoftware   *string          `json:"current_software" binding:"omitempty,max=100"`
	ContractRenewalAt *time.Time       `json:"contract_renewal_at"`
	Notes             *string          `json:"notes"`
}

// FacilityResponse represents a facility in API responses
type FacilityResponse struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	FacilityType      string           `json:"facility_type"`
	OwnershipType     string           `json:"ownership_type"`
	CensusSize        *int             `json:"census_size"`
	AnnualRevenue     *decimal.Decimal `json:"annual_revenue"`
	AddressLine1      string           `json:"address_line1"`
	AddressLine2      string           `json:"address_line2"`
	City              string           `json:"city"`
	State             string           `json:"state"`
	Zip               string           `json:"zip"`
	CCN               string           `json:"ccn"`
	CurrentSoftware   string           `json:"current_software"`
	ContractRenewalAt *time.Time       `json:"contract_renewal_at"`
	Notes             string           `json:"notes"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Version           int              `json:"version"`
}

// FacilityListFilter represents filter options for the facility list
type FacilityListFilter struct {
	Search        string `form:"search"`
	FacilityType  string `form:"facility_type" binding:"omitempty,oneof=hospice home_health palliative hybrid"`
	OwnershipType string `form:"ownership_type" binding:"omitempty,oneof=for_profit non_profit hospital_affiliated independent"`
	State         string `form:"state"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFacilityResponse converts a domain Facility to FacilityResponse
func ToFacilityResponse(f *crm.Facility) FacilityResponse {
	return FacilityResponse{
		ID:                f.ID,
		Name:              f.Name,
		FacilityType:      string(f.FacilityType),
		OwnershipType:     string(f.OwnershipType),
		CensusSize:        f.CensusSize,
		AnnualRevenue:     f.AnnualRevenue,
		AddressLine1:      f.AddressLine1,
		AddressLine2:      f.AddressLine2,
		City:              f.City,
		State:             f.State,
		Zip:               f.Zip,
		CCN:               f.CCN,
		CurrentSoftware:   f.CurrentSoftware,
		ContractRenewalAt: f.ContractRenewalAt,
		Notes:             f.Notes,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
		Version:           f.Version,
	}
}

// ToFacilityResponses converts a slice of domain Facilities
func ToFacilityResponses(facilities []crm.Facility) []FacilityResponse {
	out := make([]FacilityResponse, len(facilities))
	for i := range facilities {
		out[i] = ToFacilityResponse(&facilities[i])
	}
	return out
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to create a new contact
type CreateContactRequest struct {
	FacilityID       *uuid.UUID `json:"facility_id"`
	Name             string     `json:"name" binding:"required,min=1,max=200"`
	Title            string     `json:"title" binding:"max=100"`
	BuyerRole        string     `json:"buyer_role" binding:"omitempty,oneof=decision_maker influencer champion blocker end_user"`
	Email            string     `json:"email" binding:"omitempty,email,max=200"`
	Phone            string     `json:"phone" binding:"max=50"`
	Mobile           string     `json:"mobile" binding:"max=50"`
	PreferredChannel string     `json:"preferred_channel" binding:"max=20"`
	LinkedInURL      string     `json:"linkedin_url" binding:"omitempty,url,max=300"`
	Notes            string     `json:"notes"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	FacilityID       *uuid.UUID `json:"facility_id"`
	Name             *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Title            *string    `json:"title" binding:"omitempty,max=100"`
	BuyerRole        *string    `json:"buyer_role" binding:"omitempty,oneof=decision_maker influencer champion blocker end_user"`
	Email            *string    `json:"email" binding:"omitempty,email,max=200"`
	Phone            *string    `json:"phone" binding:"omitempty,max=50"`
	Mobile           *string    `json:"mobile" binding:"omitempty,max=50"`
	PreferredChannel *string    `json:"preferred_channel" binding:"omitempty,max=20"`
	LinkedInURL      *string    `json:"linkedin_url" binding:"omitempty,url,max=300"`
	Notes            *string    `json:"notes"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID               uuid.UUID  `json:"id"`
	FacilityID       *uuid.UUID `json:"facility_id"`
	FacilityName     string     `json:"facility_name,omitempty"`
	Name             string     `json:"name"`
	Title            string     `json:"title"`
	BuyerRole        string     `json:"buyer_role"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Mobile           string     `json:"mobile"`
	PreferredChannel string     `json:"preferred_channel"`
	LinkedInURL      string     `json:"linkedin_url"`
	Notes            string     `json:"notes"`
	LastContactedAt  *time.Time `json:"last_contacted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Version          int        `json:"version"`
}

// ContactListFilter represents filter options for the contact list
type ContactListFilter struct {
	Search     string     `form:"search"`
	FacilityID *uuid.UUID `form:"facility_id"`
	BuyerRole  string     `form:"buyer_role" binding:"omitempty,oneof=decision_maker influencer champion blocker end_user"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToContactResponse converts a domain Contact to ContactResponse.
// facilityNames enriches the response with the facility name when known.
func ToContactResponse(c *crm.Contact, facilityNames map[uuid.UUID]string) ContactResponse {
	resp := ContactResponse{
		ID:               c.ID,
		FacilityID:       c.FacilityID,
		Name:             c.Name,
		Title:            c.Title,
		BuyerRole:        string(c.BuyerRole),
		Email:            c.Email,
		Phone:            c.Phone,
		Mobile:           c.Mobile,
		PreferredChannel: c.PreferredChannel,
		LinkedInURL:      c.LinkedInURL,
		Notes:            c.Notes,
		LastContactedAt:  c.LastContactedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
	if c.FacilityID != nil {
		resp.FacilityName = facilityNames[*c.FacilityID]
	}
	return resp
}

// ToContactResponses converts a slice of domain Contacts
func ToContactResponses(contacts []crm.Contact, facilityNames map[uuid.UUID]string) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = ToContactResponse(&contacts[i], facilityNames)
	}
	return out
}

// =============================================================================
// Deal DTOs
// =============================================================================

// CreateDealRequest represents a request to create a new deal
type CreateDealRequest struct {
	FacilityID       *uuid.UUID       `json:"facility_id"`
	PrimaryContactID *uuid.UUID       `json:"primary_contact_id"`
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Stage            string           `json:"stage" binding:"omitempty,oneof=lead discovery demo_scheduled demo_completed proposal_sent negotiation verbal_commit closed_won closed_lost"`
	Value            *decimal.Decimal `json:"value"`
	RecurringValue   *decimal.Decimal `json:"recurring_value"`
	Probability      *int             `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseAt  *time.Time       `json:"expected_close_at"`
	NextStep         string           `json:"next_step"`
}

// UpdateDealRequest represents a request to update a deal
type UpdateDealRequest struct {
	FacilityID       *uuid.UUID       `json:"facility_id"`
	PrimaryContactID *uuid.UUID       `json:"primary_contact_id"`
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Value            *decimal.Decimal `json:"value"`
	RecurringValue   *decimal.Decimal `json:"recurring_value"`
	Probability      *int             `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseAt  *time.Time       `json:"expected_close_at"`
	NextStep         *string          `json:"next_step"`
	LossReason       *string          `json:"loss_reason"`
	CompetitorNotes  *string          `json:"competitor_notes"`
}

// ChangeDealStageRequest represents a request to move a deal to another stage
type ChangeDealStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=lead discovery demo_scheduled demo_completed proposal_sent negotiation verbal_commit closed_won closed_lost"`
}

// DealResponse represents a deal in API responses
type DealResponse struct {
	ID                 uuid.UUID       `json:"id"`
	FacilityID         *uuid.UUID      `json:"facility_id"`
	FacilityName       string          `json:"facility_name,omitempty"`
	PrimaryContactID   *uuid.UUID      `json:"primary_contact_id"`
	PrimaryContactName string          `json:"primary_contact_name,omitempty"`
	Name               string          `json:"name"`
	Stage              string          `json:"stage"`
	StageLabel         string          `json:"stage_label"`
	Value              decimal.Decimal `json:"value"`
	RecurringValue     decimal.Decimal `json:"recurring_value"`
	Probability        int             `json:"probability"`
	ExpectedCloseAt    *time.Time      `json:"expected_close_at"`
	NextStep           string          `json:"next_step"`
	LossReason         string          `json:"loss_reason"`
	CompetitorNotes    string          `json:"competitor_notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// DealListFilter represents filter options for the deal list
type DealListFilter struct {
	Search     string     `form:"search"`
	Stage      string     `form:"stage" binding:"omitempty,oneof=lead discovery demo_scheduled demo_completed proposal_sent negotiation verbal_commit closed_won closed_lost"`
	FacilityID *uuid.UUID `form:"facility_id"`
	Active     *bool      `form:"active"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDealResponse converts a domain Deal to DealResponse
func ToDealResponse(d *crm.Deal, facilityNames, contactNames map[uuid.UUID]string) DealResponse {
	resp := DealResponse{
		ID:               d.ID,
		FacilityID:       d.FacilityID,
		PrimaryContactID: d.PrimaryContactID,
		Name:             d.Name,
		Stage:            string(d.Stage),
		StageLabel:       d.Stage.Label(),
		Value:            d.Value,
		RecurringValue:   d.RecurringValue,
		Probability:      d.EffectiveProbability(),
		ExpectedCloseAt:  d.ExpectedCloseAt,
		NextStep:         d.NextStep,
		LossReason:       d.LossReason,
		CompetitorNotes:  d.CompetitorNotes,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Version:          d.Version,
	}
	if d.FacilityID != nil {
		resp.FacilityName = facilityNames[*d.FacilityID]
	}
	if d.PrimaryContactID != nil {
		resp.PrimaryContactName = contactNames[*d.PrimaryContactID]
	}
	return resp
}

// ToDealResponses converts a slice of domain Deals
func ToDealResponses(deals []crm.Deal, facilityNames, contactNames map[uuid.UUID]string) []DealResponse {
	out := make([]DealResponse, len(deals))
	for i := range deals {
		out[i] = ToDealResponse(&deals[i], facilityNames, contactNames)
	}
	return out
}

// =============================================================================
// Task DTOs
// =============================================================================

// CreateTaskRequest represents a request to create a new task
type CreateTaskRequest struct {
	FacilityID  *uuid.UUID `json:"facility_id"`
	ContactID   *uuid.UUID `json:"contact_id"`
	DealID      *uuid.UUID `json:"deal_id"`
	Type        string     `json:"type" binding:"required,oneof=call email meeting demo follow_up other"`
	Description string     `json:"description" binding:"required,min=1,max=500"`
	DueAt       *time.Time `json:"due_at"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	FacilityID  *uuid.UUID `json:"facility_id"`
	ContactID   *uuid.UUID `json:"contact_id"`
	DealID      *uuid.UUID `json:"deal_id"`
	Type        *string    `json:"type" binding:"omitempty,oneof=call email meeting demo follow_up other"`
	Description *string    `json:"description" binding:"omitempty,min=1,max=500"`
	DueAt       *time.Time `json:"due_at"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	FacilityID   *uuid.UUID `json:"facility_id"`
	FacilityName string     `json:"facility_name,omitempty"`
	ContactID    *uuid.UUID `json:"contact_id"`
	ContactName  string     `json:"contact_name,omitempty"`
	DealID       *uuid.UUID `json:"deal_id"`
	DealName     string     `json:"deal_name,omitempty"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	DueAt        *time.Time `json:"due_at"`
	Priority     string     `json:"priority"`
	CompletedAt  *time.Time `json:"completed_at"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// TaskListFilter represents filter options for the task list
type TaskListFilter struct {
	Search     string     `form:"search"`
	FacilityID *uuid.UUID `form:"facility_id"`
	ContactID  *uuid.UUID `form:"contact_id"`
	DealID     *uuid.UUID `form:"deal_id"`
	Priority   string     `form:"priority" binding:"omitempty,oneof=high medium low"`
	Type       string     `form:"type" binding:"omitempty,oneof=call email meeting demo follow_up other"`
	Open       *bool      `form:"open"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RelatedNames bundles the ID-to-name lookups used for task and
// activity response enrichment.
type RelatedNames struct {
	Facilities map[uuid.UUID]string
	Contacts   map[uuid.UUID]string
	Deals      map[uuid.UUID]string
}

// ToTaskResponse converts a domain Task to TaskResponse
func ToTaskResponse(t *crm.Task, names RelatedNames) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		FacilityID:  t.FacilityID,
		ContactID:   t.ContactID,
		DealID:      t.DealID,
		Type:        string(t.Type),
		Description: t.Description,
		DueAt:       t.DueAt,
		Priority:    string(t.Priority),
		CompletedAt: t.CompletedAt,
		Completed:   !t.IsOpen(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Version:     t.Version,
	}
	if t.FacilityID != nil {
		resp.FacilityName = names.Facilities[*t.FacilityID]
	}
	if t.ContactID != nil {
		resp.ContactName = names.Contacts[*t.ContactID]
	}
	if t.DealID != nil {
		resp.DealName = names.Deals[*t.DealID]
	}
	return resp
}

// ToTaskResponses converts a slice of domain Tasks
func ToTaskResponses(tasks []crm.Task, names RelatedNames) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i], names)
	}
	return out
}

// =============================================================================
// Activity DTOs
// =============================================================================

// CreateActivityRequest represents a request to log a new activity
type CreateActivityRequest struct {
	FacilityID   *uuid.UUID `json:"facility_id"`
	ContactID    *uuid.UUID `json:"contact_id"`
	DealID       *uuid.UUID `json:"deal_id"`
	Type         string     `json:"type" binding:"required,oneof=call email meeting demo follow_up other"`
	Subject      string     `json:"subject" binding:"required,min=1,max=200"`
	Notes        string     `json:"notes"`
	Outcome      string     `json:"outcome" binding:"omitempty,oneof=positive neutral negative"`
	OccurredAt   *time.Time `json:"occurred_at"`
	DurationMins *int       `json:"duration_mins" binding:"omitempty,min=0"`
}

// ActivityResponse represents an activity in API responses
type ActivityResponse struct {
	ID           uuid.UUID  `json:"id"`
	FacilityID   *uuid.UUID `json:"facility_id"`
	FacilityName string     `json:"facility_name,omitempty"`
	ContactID    *uuid.UUID `json:"contact_id"`
	ContactName  string     `json:"contact_name,omitempty"`
	DealID       *uuid.UUID `json:"deal_id"`
	DealName     string     `json:"deal_name,omitempty"`
	Type         string     `json:"type"`
	Subject      string     `json:"subject"`
	Notes        string     `json:"notes"`
	Outcome      string     `json:"outcome,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
	DurationMins *int       `json:"duration_mins"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ActivityListFilter represents filter options for the activity list
type ActivityListFilter struct {
	Search     string     `form:"search"`
	FacilityID *uuid.UUID `form:"facility_id"`
	ContactID  *uuid.UUID `form:"contact_id"`
	DealID     *uuid.UUID `form:"deal_id"`
	Type       string     `form:"type" binding:"omitempty,oneof=call email meeting demo follow_up other"`
	Outcome    string     `form:"outcome" binding:"omitempty,oneof=positive neutral negative"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToActivityResponse converts a domain Activity to ActivityResponse
func ToActivityResponse(a *crm.Activity, names RelatedNames) ActivityResponse {
	resp := ActivityResponse{
		ID:           a.ID,
		FacilityID:   a.FacilityID,
		ContactID:    a.ContactID,
		DealID:       a.DealID,
		Type:         string(a.Type),
		Subject:      a.Subject,
		Notes:        a.Notes,
		OccurredAt:   a.OccurredAt,
		DurationMins: a.DurationMins,
		CreatedAt:    a.CreatedAt,
	}
	if a.Outcome != nil {
		resp.Outcome = string(*a.Outcome)
	}
	if a.FacilityID != nil {
		resp.FacilityName = names.Facilities[*a.FacilityID]
	}
	if a.ContactID != nil {
		resp.ContactName = names.Contacts[*a.ContactID]
	}
	if a.DealID != nil {
		resp.DealName = names.Deals[*a.DealID]
	}
	return resp
}

// ToActivityResponses converts a slice of domain Activities
func ToActivityResponses(activities []crm.Activity, names RelatedNames) []ActivityResponse {
	out := make([]ActivityResponse, len(activities))
	for i := range activities {
		out[i] = ToActivityResponse(&activities[i], names)
	}
	return out
}

// =============================================================================
// Dashboard and pipeline DTOs
// =============================================================================

// DashboardStatsResponse represents the dashboard summary in API responses
type DashboardStatsResponse struct {
	PipelineValue   decimal.Decimal `json:"pipeline_value"`
	ActiveDeals     int64           `json:"active_deals"`
	FacilityCount   int64           `json:"facility_count"`
	ContactCount    int64           `json:"contact_count"`
	TasksDueToday   int64           `json:"tasks_due_today"`
	ClosedThisMonth decimal.Decimal `json:"closed_this_month"`
	WinRate         int             `json:"win_rate"`
}

// PipelineColumnResponse represents one Kanban column of open deals
type PipelineColumnResponse struct {
	Stage      string          `json:"stage"`
	Label      string          `json:"label"`
	DealCount  int64           `json:"deal_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	Deals      []DealResponse  `json:"deals"`
}

// PipelineBoardResponse represents the full Kanban board
type PipelineBoardResponse struct {
	Columns []PipelineColumnResponse `json:"columns"`
}

// PipelineStageSummaryResponse represents one stage's rollup without deals
type PipelineStageSummaryResponse struct {
	Stage      string          `json:"stage"`
	Label      string          `json:"label"`
	DealCount  int64           `json:"deal_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// PipelineSummaryResponse represents per-stage rollups for the dashboard
type PipelineSummaryResponse struct {
	Stages []PipelineStageSummaryResponse `json:"stages"`
}

// MoveDealRequest represents a request to move a deal on the board
type MoveDealRequest struct {
	Stage string `json:"stage" binding:"required,oneof=lead discovery demo_scheduled demo_completed proposal_sent negotiation verbal_commit closed_won closed_lost"`
}
