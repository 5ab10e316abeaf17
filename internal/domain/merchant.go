package domain

import "time"

// MerchantStatus represents the account standing of a merchant.
type MerchantStatus string

const (
	MerchantActive    MerchantStatus = "ACTIVE"
	MerchantInactive  MerchantStatus = "INACTIVE"
	MerchantSuspended MerchantStatus = "SUSPENDED"
)

// Merchant is the business that raises complaint tickets.
type Merchant struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	BusinessType     string         `json:"businessType"`
	RegistrationDate time.Time      `json:"registrationDate"`
	Status           MerchantStatus `json:"status"`
}
