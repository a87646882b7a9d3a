package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ihirwe-dev/gura-express-api/models"
)

// MessageService owns the conversation threads: per-order threads between
// a customer and staff, and staff-to-staff threads, with read tracking.
// Messages are append-only; the only mutation is flipping the read flag.
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a MessageService backed by db
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// SendMessageInput carries a new message. OrderID selects the user_order
// thread of that order; with no OrderID, ReceiverID selects a staff
// thread. OrderID wins when both are present.
type SendMessageInput struct {
	OrderID    string
	ReceiverID string
	Content    string
	MediaType  string
	MediaPath  string
}

// SendMessage appends a message to a thread on behalf of sender. Order
// threads require record-level access to the order; staff threads require
// both parties to hold staff roles.
func (s *MessageService) SendMessage(sender *models.User, input SendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, NewValidationError("Message content is required")
	}

	message := models.Message{
		SenderID:  sender.ID,
		Content:   input.Content,
		MediaType: models.MediaText,
	}
	if input.MediaType != "" {
		message.MediaType = input.MediaType
	}
	if input.MediaPath != "" {
		message.MediaPath = &input.MediaPath
	}
	if input.ReceiverID != "" {
		receiverID := input.ReceiverID
		message.ReceiverID = &receiverID
	}

	if input.OrderID != "" {
		var order models.Order
		if err := s.db.First(&order, "id = ?", input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Order")
			}
			return nil, NewStorageError(err)
		}
		if !CanAccessOrder(sender, &order) {
			return nil, NewForbiddenError("You do not have access to this order's conversation")
		}
		orderID := input.OrderID
		message.OrderID = &orderID
		message.ConversationType = models.ConversationUserOrder
	} else {
		if input.ReceiverID == "" {
			return nil, NewValidationError("Either an order or a receiver is required")
		}
		if !IsStaff(sender.Role) {
			return nil, NewForbiddenError("Staff conversations are restricted to staff roles")
		}
		var receiver models.User
		if err := s.db.First(&receiver, "id = ?", input.ReceiverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Receiver")
			}
			return nil, NewStorageError(err)
		}
		if !IsStaff(receiver.Role) {
			return nil, NewValidationError("Receiver must hold a staff role")
		}
		message.ConversationType = models.ConversationEmployeeAdmin
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return &message, nil
}

// ListOrderThread returns the user_order messages of an order in
// chronological order. The caller must pass the record-level access rule.
func (s *MessageService) ListOrderThread(principal *models.User, orderID string) ([]models.Message, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, NewStorageError(err)
	}
	if !CanAccessOrder(principal, &order) {
		return nil, NewForbiddenError("You do not have access to this order's conversation")
	}

	var messages []models.Message
	err := s.db.
		Where("order_id = ? AND conversation_type = ?", orderID, models.ConversationUserOrder).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, NewStorageError(err)
	}
	return messages, nil
}

// ListStaffThread returns employee_admin messages. With both ids it
// returns the unordered pair's thread; with only userA it returns every
// staff message touching userA (the broadcast reading of a null receiver).
func (s *MessageService) ListStaffThread(userA, userB string) ([]models.Message, error) {
	q := s.db.Where("conversation_type = ?", models.ConversationEmployeeAdmin)
	if userB != "" {
		q = q.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA,
		)
	} else {
		q = q.Where("sender_id = ? OR receiver_id = ?", userA, userA)
	}

	var messages []models.Message
	if err := q.Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return messages, nil
}

// MarkRead flips the read flag for the given message ids. Empty input is a
// no-op; re-marking read messages is harmless.
func (s *MessageService) MarkRead(messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	err := s.db.Model(&models.Message{}).
		Where("id IN ?", messageIDs).
		Update("is_read", true).Error
	if err != nil {
		return NewStorageError(err)
	}
	return nil
}

// UnreadCount counts unread messages addressed to userID.
func (s *MessageService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, NewStorageError(err)
	}
	return count, nil
}
