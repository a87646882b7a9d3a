package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ihirwe-dev/gura-express-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test
// environment, so a stray DATABASE_URL can never point a destructive test
// at a real database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: tests must run with GO_ENV=test. Current GO_ENV=%q.", env)
	}
}

// OpenTestDB opens an in-memory sqlite database migrated with every model
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderStatusHistory{},
		&models.Message{},
		&models.HeroContent{},
		&models.AboutUs{},
		&models.Company{},
		&models.SocialMediaLink{},
		&models.TermsPolicy{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts a user with the given role and verification status
func CreateUser(t *testing.T, db *gorm.DB, email, role, verificationStatus string) *models.User {
	t.Helper()

	user := models.User{
		Email:              email,
		Password:           "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		FirstName:          "Test",
		LastName:           "User",
		Role:               role,
		VerificationStatus: verificationStatus,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// CreateOrder inserts a pending order owned by userID
func CreateOrder(t *testing.T, db *gorm.DB, userID string) *models.Order {
	t.Helper()

	order := models.Order{
		UserID:          userID,
		ProductLink:     "https://item.taobao.com/item.htm?id=1",
		ProductName:     "Widget",
		Quantity:        1,
		ShippingAddress: "Kigali, KG 123",
		Status:          models.OrderStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return &order
}
