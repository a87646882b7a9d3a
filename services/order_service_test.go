package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe-dev/gura-express-api/models"
	"github.com/ihirwe-dev/gura-express-api/tests/testutil"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain number", "3", 3},
		{"one", "1", 1},
		{"zero coerces to one", "0", 1},
		{"negative coerces to one", "-2", 1},
		{"garbage coerces to one", "lots", 1},
		{"empty coerces to one", "", 1},
		{"whitespace trimmed", " 5 ", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.raw))
		})
	}
}

func TestCreateOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)

	order, err := svc.CreateOrder(owner, CreateOrderInput{
		ProductLink:     "https://item.taobao.com/x",
		ProductName:     "Widget",
		Quantity:        "3",
		ShippingAddress: "Kigali, KG 123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.OrderStage)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, owner.ID, order.UserID)

	// Creation always writes exactly one history row
	var history []models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.OrderStatusPending, history[0].Stage)
	assert.Equal(t, "Order submitted", *history[0].Note)
	assert.Nil(t, history[0].UpdatedBy)
}

func TestCreateOrderUnverified(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationPending)

	_, err := svc.CreateOrder(owner, CreateOrderInput{
		ProductLink:     "https://item.taobao.com/x",
		ProductName:     "Widget",
		ShippingAddress: "Kigali",
	})
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, AsServiceError(err).Code)

	// Nothing was written
	var orderCount, historyCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderStatusHistory{}).Count(&historyCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, historyCount)
}

func TestCreateOrderValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)

	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{"missing link", CreateOrderInput{ProductName: "Widget", ShippingAddress: "Kigali"}},
		{"relative link", CreateOrderInput{ProductLink: "item.taobao.com/x", ProductName: "Widget", ShippingAddress: "Kigali"}},
		{"ftp link", CreateOrderInput{ProductLink: "ftp://item.taobao.com/x", ProductName: "Widget", ShippingAddress: "Kigali"}},
		{"missing name", CreateOrderInput{ProductLink: "https://item.taobao.com/x", ShippingAddress: "Kigali"}},
		{"missing address", CreateOrderInput{ProductLink: "https://item.taobao.com/x", ProductName: "Widget"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(owner, tt.input)
			require.Error(t, err)
			assert.Equal(t, CodeValidation, AsServiceError(err).Code)
		})
	}
}

func TestApproveOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	approved, err := svc.ApproveOrder(order.ID, employee.ID, employee.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, employee.ID, *approved.ApprovedBy)
	require.NotNil(t, approved.AssignedEmployeeID)
	assert.Equal(t, employee.ID, *approved.AssignedEmployeeID)

	var history []models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("created_at ASC").Find(&history).Error)
	require.Len(t, history, 1) // testutil.CreateOrder inserts directly, no creation row
	assert.Equal(t, models.OrderStatusApproved, history[0].Stage)
	assert.Equal(t, employee.ID, *history[0].UpdatedBy)
}

func TestApproveOrderTwiceConflicts(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	_, err := svc.ApproveOrder(order.ID, employee.ID, "")
	require.NoError(t, err)

	_, err = svc.ApproveOrder(order.ID, employee.ID, "")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsServiceError(err).Code)

	// Exactly one approval in the audit trail
	var count int64
	db.Model(&models.OrderStatusHistory{}).
		Where("order_id = ? AND stage = ?", order.ID, models.OrderStatusApproved).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApproveOrderAssigneeMustBeStaff(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	_, err := svc.ApproveOrder(order.ID, admin.ID, owner.ID)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, AsServiceError(err).Code)

	// The failed approval left the order untouched
	current, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, current.Status)
}

func TestApproveMissingOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	staff := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)

	_, err := svc.ApproveOrder("00000000-0000-0000-0000-000000000000", staff.ID, "")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, AsServiceError(err).Code)
}

func TestDeclineOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	declined, err := svc.DeclineOrder(order.ID, admin.ID, "out of stock")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusDeclined, declined.Status)
	require.NotNil(t, declined.DeclineReason)
	assert.Equal(t, "out of stock", *declined.DeclineReason)
	require.NotNil(t, declined.DeclinedBy)
	assert.Equal(t, admin.ID, *declined.DeclinedBy)

	var history models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ? AND stage = ?", order.ID, models.OrderStatusDeclined).First(&history).Error)
	assert.Equal(t, "Declined: out of stock", *history.Note)

	// Declined is terminal: a later approval must conflict
	_, err = svc.ApproveOrder(order.ID, admin.ID, "")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsServiceError(err).Code)
}

func TestDeclineOrderRequiresReason(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	for _, reason := range []string{"", "   "} {
		_, err := svc.DeclineOrder(order.ID, admin.ID, reason)
		require.Error(t, err)
		assert.Equal(t, CodeValidation, AsServiceError(err).Code)
	}
}

func TestAdvanceStage(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	_, err := svc.ApproveOrder(order.ID, employee.ID, "")
	require.NoError(t, err)

	updated, err := svc.AdvanceStage(order.ID, employee.ID, models.StageInWarehouse, "")
	require.NoError(t, err)

	require.NotNil(t, updated.OrderStage)
	assert.Equal(t, models.StageInWarehouse, *updated.OrderStage)
	assert.Equal(t, models.OrderStatusApproved, updated.Status)

	var history models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ? AND stage = ?", order.ID, models.StageInWarehouse).First(&history).Error)
	assert.Equal(t, "Stage updated to in_warehouse", *history.Note)
}

func TestAdvanceStageFreelySettable(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	_, err := svc.ApproveOrder(order.ID, employee.ID, "")
	require.NoError(t, err)

	// Staff can move backward to correct a mis-set stage
	_, err = svc.AdvanceStage(order.ID, employee.ID, models.StageInRwanda, "")
	require.NoError(t, err)
	updated, err := svc.AdvanceStage(order.ID, employee.ID, models.StagePurchasedFromChina, "mis-set, correcting")
	require.NoError(t, err)
	assert.Equal(t, models.StagePurchasedFromChina, *updated.OrderStage)

	// One history row per stage change
	var count int64
	db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 3, count) // approve + two stage updates
}

func TestAdvanceStageGuards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	// Unknown stage value
	_, err := svc.AdvanceStage(order.ID, employee.ID, "teleported", "")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, AsServiceError(err).Code)

	// Pending order has no stage
	_, err = svc.AdvanceStage(order.ID, employee.ID, models.StageInWarehouse, "")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, AsServiceError(err).Code)

	// The failed calls wrote no history
	var count int64
	db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
}

func TestAssignEmployee(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	updated, err := svc.AssignEmployee(order.ID, employee.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedEmployeeID)
	assert.Equal(t, employee.ID, *updated.AssignedEmployeeID)

	// Assignment is administrative metadata: no history row
	var count int64
	db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count)

	// Customers cannot be assignees
	_, err = svc.AssignEmployee(order.ID, owner.ID)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, AsServiceError(err).Code)
}

func TestSetInternalNotes(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	order := testutil.CreateOrder(t, db, owner.ID)

	updated, err := svc.SetInternalNotes(order.ID, "supplier quoted 42 USD")
	require.NoError(t, err)
	require.NotNil(t, updated.InternalNotes)
	assert.Equal(t, "supplier quoted 42 USD", *updated.InternalNotes)

	var count int64
	db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	other := testutil.CreateUser(t, db, "other@example.com", models.RoleUser, models.VerificationVerified)

	created, err := svc.CreateOrder(owner, CreateOrderInput{
		ProductLink:     "https://item.taobao.com/x",
		ProductName:     "Widget",
		Quantity:        "3",
		Variation:       "blue",
		ShippingAddress: "Kigali, KG 123",
	})
	require.NoError(t, err)
	testutil.CreateOrder(t, db, other.ID)

	orders, err := svc.ListUserOrders(owner.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, created.ID, orders[0].ID)
	assert.Equal(t, "https://item.taobao.com/x", orders[0].ProductLink)
	assert.Equal(t, "Widget", orders[0].ProductName)
	assert.Equal(t, 3, orders[0].Quantity)
	require.NotNil(t, orders[0].Variation)
	assert.Equal(t, "blue", *orders[0].Variation)
	assert.Equal(t, "Kigali, KG 123", orders[0].ShippingAddress)
}

func TestListAssignedOrders(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewOrderService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser, models.VerificationVerified)
	employee := testutil.CreateUser(t, db, "emp@example.com", models.RoleEmployee, models.VerificationVerified)

	assigned := testutil.CreateOrder(t, db, owner.ID)
	testutil.CreateOrder(t, db, owner.ID) // unassigned

	_, err := svc.ApproveOrder(assigned.ID, employee.ID, employee.ID)
	require.NoError(t, err)

	orders, err := svc.ListAssignedOrders(employee.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, assigned.ID, orders[0].ID)
}
