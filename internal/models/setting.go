package models

import "time"

// Setting keys used by the storefront
const (
	SettingAdvancePercent = "advance_percent" // advance asked at checkout, 0-50
	SettingAutoApprove    = "auto_approve"    // auto-approve buyer registrations
	SettingHomeSections   = "home_sections"   // JSON layout of home page sections
	SettingStoreName      = "store_name"
	SettingSupportMobile  = "support_mobile"
)

// Setting is a key/value store row for storefront configuration
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClampAdvancePercent enforces the 0-50 range with the storefront default
func ClampAdvancePercent(v int) int {
	if v <= 0 {
		return 0
	}
	if v > 50 {
		return 50
	}
	return v
}
