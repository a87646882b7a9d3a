package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. Declined is terminal; approved orders progress through
// the fulfillment stages below.
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusDeclined = "declined"
)

// Fulfillment stages of an approved order, in pipeline order.
const (
	StagePurchasedFromChina = "purchased_from_china"
	StageInWarehouse        = "in_warehouse"
	StageInShip             = "in_ship"
	StageInRwanda           = "in_rwanda"
	StageDelivered          = "delivered"
)

// OrderStages lists the five fulfillment stages in pipeline order.
var OrderStages = []string{
	StagePurchasedFromChina,
	StageInWarehouse,
	StageInShip,
	StageInRwanda,
	StageDelivered,
}

// Order represents a purchasing-proxy request: a product link pasted from a
// Chinese e-commerce site plus shipping details, moved by staff through the
// fulfillment pipeline.
type Order struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string  `gorm:"not null;index" json:"user_id"` // owner, immutable after creation
	User           User    `gorm:"foreignKey:UserID" json:"-"`
	ProductLink    string  `gorm:"not null" json:"product_link"`
	ProductName    string  `gorm:"not null" json:"product_name"`
	ScreenshotPath *string `json:"screenshot_path"`
	Quantity       int     `gorm:"not null;default:1" json:"quantity"`
	Variation      *string `json:"variation"`
	Specifications *string `json:"specifications"`
	Notes          *string `json:"notes"`
	ShippingAddress string `gorm:"not null" json:"shipping_address"`
	EstimatedCost  *float64 `json:"estimated_cost"`
	TrackingNumber *string  `json:"tracking_number"`

	Status             string  `gorm:"not null;default:'pending';index" json:"status"`
	OrderStage         *string `gorm:"index" json:"order_stage"` // nil unless status=approved
	ApprovedBy         *string `json:"approved_by"`
	DeclinedBy         *string `json:"declined_by"`
	DeclineReason      *string `json:"decline_reason"`
	AssignedEmployeeID *string `gorm:"index" json:"assigned_employee_id"`
	AssignedEmployee   *User   `gorm:"foreignKey:AssignedEmployeeID" json:"-"`
	InternalNotes      *string `json:"internal_notes,omitempty"` // staff-only annotation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ValidOrderStage reports whether stage is one of the five fulfillment stages.
func ValidOrderStage(stage string) bool {
	for _, s := range OrderStages {
		if s == stage {
			return true
		}
	}
	return false
}
