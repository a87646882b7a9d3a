package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatusHistory is the append-only audit log of an order. Exactly one
// row is written per state-changing operation (creation, approve, decline,
// stage update), inside the same transaction as the order mutation. Rows
// are never updated or deleted.
type OrderStatusHistory struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string    `gorm:"not null;index" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID" json:"-"`
	Stage     string    `gorm:"not null" json:"stage"` // transition label: status value or fulfillment stage
	Note      *string   `json:"note"`
	UpdatedBy *string   `json:"updated_by"` // nil for system-generated entries
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderStatusHistory model
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

// BeforeCreate assigns a UUID primary key.
func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
