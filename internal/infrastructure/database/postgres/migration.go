// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/domain/cart"
	"github.com/your-org/tireshop-backend/internal/domain/deal"
	"github.com/your-org/tireshop-backend/internal/domain/fleet"
	"github.com/your-org/tireshop-backend/internal/domain/order"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"github.com/your-org/tireshop-backend/internal/domain/user"
	"github.com/your-org/tireshop-backend/internal/domain/vehicle"
	"github.com/your-org/tireshop-backend/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	// Dependency order matters: referenced tables first
	models := []interface{}{
		&user.User{},

		&product.Brand{},
		&product.Product{},
		&product.ServiceOption{},

		&deal.Deal{},

		&cart.CartItem{},
		&wishlist.WishlistItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},

		&vehicle.Vehicle{},

		&fleet.Appointment{},
		&fleet.Attachment{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_type_active ON products(product_type, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_brand_active ON products(brand_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_rim_diameter ON products(rim_diameter)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",

		// Deal indexes
		"CREATE INDEX IF NOT EXISTS idx_deals_created_at ON deals(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_deals_brand ON deals(brand_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",

		// Wishlist indexes
		"CREATE INDEX IF NOT EXISTS idx_wishlist_items_user_added ON wishlist_items(user_id, added_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Vehicle indexes
		"CREATE INDEX IF NOT EXISTS idx_user_vehicles_user_default ON user_vehicles(user_id, is_default)",

		// Fleet indexes
		"CREATE INDEX IF NOT EXISTS idx_fleet_appointments_user_status ON fleet_appointments(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_fleet_attachments_appointment ON fleet_attachments(appointment_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
		}
	}
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	m.logger.Info("Seeding initial data")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedBrands(); err != nil {
		return fmt.Errorf("failed to seed brands: %w", err)
	}
	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	if err := m.seedDeals(); err != nil {
		return fmt.Errorf("failed to seed deals: %w", err)
	}

	m.logger.Info("Initial data seeded")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var count int64
	m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin#2024!secure"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Email:     "admin@tireshop.local",
		Password:  string(hashed),
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
		IsAdmin:   true,
	}
	return m.db.Create(&admin).Error
}

func (m *Migration) seedBrands() error {
	var count int64
	m.db.Model(&product.Brand{}).Count(&count)
	if count > 0 {
		return nil
	}

	brands := []product.Brand{
		{Name: "Michelin", Slug: "michelin", IsActive: true},
		{Name: "Bridgestone", Slug: "bridgestone", IsActive: true},
		{Name: "Goodyear", Slug: "goodyear", IsActive: true},
		{Name: "Continental", Slug: "continental", IsActive: true},
		{Name: "Enkei", Slug: "enkei", IsActive: true},
		{Name: "BBS", Slug: "bbs", IsActive: true},
	}
	return m.db.Create(&brands).Error
}

func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	var michelin, enkei product.Brand
	if err := m.db.Where("slug = ?", "michelin").First(&michelin).Error; err != nil {
		return err
	}
	if err := m.db.Where("slug = ?", "enkei").First(&enkei).Error; err != nil {
		return err
	}

	products := []product.Product{
		{
			SKU:             "TIRE-MICH-PS4-22545R17",
			Name:            "Michelin Pilot Sport 4 225/45R17",
			Slug:            "michelin-pilot-sport-4-225-45r17",
			ProductType:     "tire",
			Price:           18999,
			ComparePrice:    21999,
			InstallationFee: 2500,
			BrandID:         &michelin.ID,
			TireWidth:       225,
			AspectRatio:     45,
			RimDiameter:     17,
			SpeedRating:     "Y",
			IsActive:        true,
			TrackQuantity:   true,
			Quantity:        48,
		},
		{
			SKU:             "TIRE-MICH-XICE-20555R16",
			Name:            "Michelin X-Ice Snow 205/55R16",
			Slug:            "michelin-x-ice-snow-205-55r16",
			ProductType:     "tire",
			Price:           14999,
			InstallationFee: 2500,
			BrandID:         &michelin.ID,
			TireWidth:       205,
			AspectRatio:     55,
			RimDiameter:     16,
			SpeedRating:     "T",
			IsActive:        true,
			TrackQuantity:   true,
			Quantity:        32,
		},
		{
			SKU:             "WHEEL-ENK-TS10-17X8",
			Name:            "Enkei TS-10 17x8",
			Slug:            "enkei-ts-10-17x8",
			ProductType:     "wheel",
			Price:           22500,
			InstallationFee: 1500,
			BrandID:         &enkei.ID,
			RimDiameter:     17,
			BoltPattern:     "5x114.3",
			IsActive:        true,
			TrackQuantity:   true,
			Quantity:        16,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return err
	}

	options := []product.ServiceOption{
		{ProductID: products[0].ID, Name: "Road hazard protection", Price: 1200},
		{ProductID: products[0].ID, Name: "Nitrogen fill", Price: 500},
		{ProductID: products[1].ID, Name: "Road hazard protection", Price: 1000},
		{ProductID: products[2].ID, Name: "Hub-centric rings", Price: 800},
	}
	return m.db.Create(&options).Error
}

func (m *Migration) seedDeals() error {
	var count int64
	m.db.Model(&deal.Deal{}).Count(&count)
	if count > 0 {
		return nil
	}

	var michelin product.Brand
	if err := m.db.Where("slug = ?", "michelin").First(&michelin).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	deals := []deal.Deal{
		{
			Title:              "Buy 3 Get 1 Free",
			Description:        "Buy three select tires, get the fourth free.",
			DiscountPercentage: 25,
			BrandID:            &michelin.ID,
			ValidFrom:          now.AddDate(0, 0, -7).Format(time.RFC3339),
			ValidTo:            now.AddDate(0, 1, 0).Format(time.RFC3339),
		},
		{
			Title:              "Winter Changeover Special",
			Description:        "Discounted mounting and balancing on winter sets.",
			DiscountPercentage: 15,
			ValidFrom:          now.AddDate(0, -2, 0).Format(time.RFC3339),
			ValidTo:            now.AddDate(0, 0, -1).Format(time.RFC3339),
		},
	}
	return m.db.Create(&deals).Error
}
