package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation types. A user_order message belongs to one order's thread;
// an employee_admin message belongs to a staff-to-staff thread.
const (
	ConversationUserOrder     = "user_order"
	ConversationEmployeeAdmin = "employee_admin"
)

// Media types a message can carry.
const (
	MediaText     = "text"
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

// Message represents one entry in a conversation thread
type Message struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID          *string   `gorm:"index" json:"order_id"` // set for user_order messages
	SenderID         string    `gorm:"not null;index" json:"sender_id"`
	Sender           User      `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID       *string   `gorm:"index" json:"receiver_id"` // set for employee_admin messages
	Content          string    `gorm:"type:text;not null" json:"content"`
	MediaType        string    `gorm:"not null;default:'text'" json:"media_type"`
	MediaPath        *string   `json:"media_path"`
	ConversationType string    `gorm:"not null;default:'user_order';index" json:"conversation_type"`
	IsRead           bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID primary key.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
