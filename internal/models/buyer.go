package models

import "time"

// BuyerStatus is the registration lifecycle of a storefront buyer
type BuyerStatus string

const (
	BuyerStatusPending  BuyerStatus = "pending"
	BuyerStatusApproved BuyerStatus = "approved"
	BuyerStatusRejected BuyerStatus = "rejected"
	BuyerStatusBlocked  BuyerStatus = "blocked"
)

// Buyer is a registered wholesale customer. Only approved buyers can log in
// and place orders.
type Buyer struct {
	ID             int         `json:"id"`
	ShopName       string      `json:"shop_name"`
	BuyerName      string      `json:"buyer_name"`
	Mobile         string      `json:"mobile"`
	City           string      `json:"city"`
	BusinessType   string      `json:"business_type"` // Dealer / Shop / Agent
	GST            string      `json:"gst,omitempty"`
	Status         BuyerStatus `json:"status"`
	RegisteredDate time.Time   `json:"registered_date"`
}

// RegisterBuyerRequest is the storefront registration form
type RegisterBuyerRequest struct {
	ShopName     string `json:"shop_name" validate:"required"`
	BuyerName    string `json:"buyer_name" validate:"required"`
	Mobile       string `json:"mobile" validate:"required,len=10,numeric"`
	City         string `json:"city" validate:"required"`
	BusinessType string `json:"business_type" validate:"required"`
	GST          string `json:"gst"`
}
