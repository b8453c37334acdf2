package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// FacilitySortFields contains allowed sort fields for facilities
var FacilitySortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"facility_type":       true,
	"ownership_type":      true,
	"census_size":         true,
	"annual_revenue":      true,
	"city":                true,
	"state":               true,
	"contract_renewal_at": true,
}

// ContactSortFields contains allowed sort fields for contacts
var ContactSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"title":             true,
	"buyer_role":        true,
	"email":             true,
	"last_contacted_at": true,
}

// DealSortFields contains allowed sort fields for deals
var DealSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"stage":             true,
	"value":             true,
	"recurring_value":   true,
	"probability":       true,
	"expected_close_at": true,
}

// TaskSortFields contains allowed sort fields for tasks
var TaskSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"type":         true,
	"due_at":       true,
	"priority":     true,
	"completed_at": true,
}

// ActivitySortFields contains allowed sort fields for activities
var ActivitySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"type":        true,
	"subject":     true,
	"outcome":     true,
	"occurred_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"status":        true,
	"last_login_at": true,
}
