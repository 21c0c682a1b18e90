package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer. Phone and email are both unique
// login identifiers; only the latest issued JWT is kept on the record.
type User struct {
	BaseModel
	Username     string     `json:"username"`
	Phone        string     `gorm:"uniqueIndex" json:"phone"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Role         string     `gorm:"default:user" json:"role"`
	IPAddress    string     `json:"ipAddress,omitempty"`
	AuthToken    string     `gorm:"index" json:"authToken,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	ReferralCode string     `json:"referralCode"`
	ReferredBy   string     `json:"referredBy,omitempty"`
	RewardPoints int        `json:"rewardPoints"`

	LoginHistory []LoginHistoryEntry `json:"loginHistory,omitempty"`
	Addresses    []Address           `json:"savedAddresses,omitempty"`
	Cart         []CartItem          `json:"cart,omitempty"`
	Purchases    []Purchase          `json:"purchases,omitempty"`
}

// LoginHistoryEntry records one login attempt.
type LoginHistoryEntry struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	At        time.Time `json:"at"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Method    string    `json:"method"` // phone|email
	Success   bool      `json:"success"`
}

// Address is a saved shipping address.
type Address struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Pincode      string    `json:"pincode"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `gorm:"default:India" json:"country"`
	IsDefault    bool      `json:"isDefault"`
}

// CartItem is an entry in the user's active cart.
type CartItem struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"-"`
	ProductID     string    `json:"productId"`
	SKU           string    `json:"sku"`
	Title         string    `json:"title"`
	Image         string    `json:"image"`
	PriceSnapshot float64   `json:"priceSnapshot"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	AddedAt       time.Time `json:"addedAt"`
}

// Purchase is a completed order kept on the user for warranty and claims.
type Purchase struct {
	BaseModel
	UserID             uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	ProductID          string     `json:"productId"`
	PurchaseID         string     `json:"purchaseId"`
	Amount             float64    `json:"amount"`
	PurchaseDate       time.Time  `json:"purchaseDate"`
	WarrantyAvailable  bool       `json:"warrantyAvailable"`
	WarrantyYears      int        `json:"warrantyYears"`
	WarrantyExpiryDate *time.Time `json:"warrantyExpiryDate,omitempty"`
	ReturnPolicyDays   int        `json:"returnPolicyDays"`
	ClaimEligibleAfter int        `json:"claimEligibleAfterYears"`
	ClaimEligibleDate  *time.Time `json:"claimEligibleDate,omitempty"`
	ClaimCompleted     bool       `json:"claimCompleted"`
}

// OTPRequest tracks each issued one-time code. The code itself is stored
// only as a bcrypt hash; verification is not exposed yet.
type OTPRequest struct {
	BaseModel
	ContactType string    `json:"contactType"` // phone|email
	Contact     string    `gorm:"index" json:"contact"`
	Mode        string    `json:"mode"` // register|login
	CodeHash    string    `json:"-"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Used        bool      `json:"used"`
}
