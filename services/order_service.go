package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/ihirwe-dev/gura-express-api/models"
)

// OrderService is the order lifecycle engine. Every legal state transition
// on an order goes through here, and every transition commits atomically
// with its audit-history row: both succeed or both roll back.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an OrderService backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderInput carries the customer-supplied fields of a new order.
// Quantity arrives as a string because the order form posts multipart
// form data, not typed JSON.
type CreateOrderInput struct {
	ProductLink     string
	ProductName     string
	Quantity        string
	Variation       string
	Specifications  string
	Notes           string
	ShippingAddress string
	ScreenshotPath  string
}

// ParseQuantity coerces the raw quantity field to a positive integer,
// defaulting to 1 on garbage or non-positive input.
func ParseQuantity(raw string) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || q < 1 {
		return 1
	}
	return q
}

func validProductLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CreateOrder places a new order for user. The user must be a verified
// customer. The order is created pending with no fulfillment stage, and
// the initial history row is written in the same transaction.
func (s *OrderService) CreateOrder(user *models.User, input CreateOrderInput) (*models.Order, error) {
	if !CanCreateOrder(user) {
		if user.Role == models.RoleUser {
			return nil, NewForbiddenError("Account not verified. Please complete verification first.")
		}
		return nil, NewForbiddenError("Only customers can create orders")
	}

	if !validProductLink(input.ProductLink) {
		return nil, NewValidationError("Product link must be a valid URL")
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, NewValidationError("Product name is required")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, NewValidationError("Shipping address is required")
	}

	order := models.Order{
		UserID:          user.ID,
		ProductLink:     input.ProductLink,
		ProductName:     input.ProductName,
		Quantity:        ParseQuantity(input.Quantity),
		ShippingAddress: input.ShippingAddress,
		Status:          models.OrderStatusPending,
	}
	if input.Variation != "" {
		order.Variation = &input.Variation
	}
	if input.Specifications != "" {
		order.Specifications = &input.Specifications
	}
	if input.Notes != "" {
		order.Notes = &input.Notes
	}
	if input.ScreenshotPath != "" {
		order.ScreenshotPath = &input.ScreenshotPath
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		note := "Order submitted"
		return tx.Create(&models.OrderStatusHistory{
			OrderID: order.ID,
			Stage:   models.OrderStatusPending,
			Note:    &note,
		}).Error
	})
	if err != nil {
		return nil, NewStorageError(err)
	}

	return &order, nil
}

// ApproveOrder moves a pending order to approved, recording who approved
// it and optionally assigning an employee. A conditional update on
// status=pending detects concurrent approvals or declines: the losing
// writer gets a conflict instead of silently overwriting.
func (s *OrderService) ApproveOrder(orderID, staffID string, assignedEmployeeID string) (*models.Order, error) {
	if assignedEmployeeID != "" {
		if err := s.requireStaffUser(assignedEmployeeID); err != nil {
			return nil, err
		}
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Order")
			}
			return err
		}

		updates := map[string]interface{}{
			"status":      models.OrderStatusApproved,
			"approved_by": staffID,
		}
		if assignedEmployeeID != "" {
			updates["assigned_employee_id"] = assignedEmployeeID
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewConflictError(fmt.Sprintf("Order is %s, only pending orders can be approved", order.Status))
		}

		note := "Order approved"
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:   orderID,
			Stage:     models.OrderStatusApproved,
			Note:      &note,
			UpdatedBy: &staffID,
		}).Error; err != nil {
			return err
		}

		return tx.First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		return nil, AsServiceError(err)
	}
	return &order, nil
}

// DeclineOrder moves a pending order to declined with a mandatory reason.
// Declined is terminal.
func (s *OrderService) DeclineOrder(orderID, staffID, reason string) (*models.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, NewValidationError("Decline reason is required")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Order")
			}
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":         models.OrderStatusDeclined,
				"declined_by":    staffID,
				"decline_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewConflictError(fmt.Sprintf("Order is %s, only pending orders can be declined", order.Status))
		}

		note := "Declined: " + reason
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:   orderID,
			Stage:     models.OrderStatusDeclined,
			Note:      &note,
			UpdatedBy: &staffID,
		}).Error; err != nil {
			return err
		}

		return tx.First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		return nil, AsServiceError(err)
	}
	return &order, nil
}

// AdvanceStage sets the fulfillment stage of an approved order. Stages are
// deliberately freely settable across the five values so staff can correct
// a mis-set stage; only the approved status is enforced.
func (s *OrderService) AdvanceStage(orderID, staffID, stage, note string) (*models.Order, error) {
	if !models.ValidOrderStage(stage) {
		return nil, NewValidationError("Invalid stage %q", stage)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Order")
			}
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusApproved).
			Update("order_stage", stage)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewConflictError(fmt.Sprintf("Order is %s, stage applies only to approved orders", order.Status))
		}

		if note == "" {
			note = "Stage updated to " + stage
		}
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:   orderID,
			Stage:     stage,
			Note:      &note,
			UpdatedBy: &staffID,
		}).Error; err != nil {
			return err
		}

		return tx.First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		return nil, AsServiceError(err)
	}
	return &order, nil
}

// AssignEmployee reassigns an order to a staff member. Administrative
// metadata only; no history row is written.
func (s *OrderService) AssignEmployee(orderID, employeeID string) (*models.Order, error) {
	if err := s.requireStaffUser(employeeID); err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, NewStorageError(err)
	}

	if err := s.db.Model(&order).Update("assigned_employee_id", employeeID).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return &order, nil
}

// SetInternalNotes updates the staff-only annotation on an order. No
// history row and no status effect.
func (s *OrderService) SetInternalNotes(orderID, notes string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, NewStorageError(err)
	}

	if err := s.db.Model(&order).Update("internal_notes", notes).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return &order, nil
}

// requireStaffUser verifies that id references an existing user holding a
// staff role.
func (s *OrderService) requireStaffUser(id string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("Assigned employee does not exist")
		}
		return NewStorageError(err)
	}
	if !IsStaff(user.Role) {
		return NewValidationError("Assigned employee must hold a staff role")
	}
	return nil
}

// GetOrder fetches one order by id.
func (s *OrderService) GetOrder(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, NewStorageError(err)
	}
	return &order, nil
}

// ListUserOrders returns the orders owned by userID, newest first.
func (s *OrderService) ListUserOrders(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return orders, nil
}

// ListAssignedOrders returns the orders assigned to employeeID, newest first.
func (s *OrderService) ListAssignedOrders(employeeID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("assigned_employee_id = ?", employeeID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return orders, nil
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return orders, nil
}

// ListPendingOrders returns orders awaiting approval, newest first.
func (s *OrderService) ListPendingOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("status = ?", models.OrderStatusPending).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return orders, nil
}

// GetOrderHistory returns the audit trail of an order, newest first.
func (s *OrderService) GetOrderHistory(orderID string) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	if err := s.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&history).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return history, nil
}
