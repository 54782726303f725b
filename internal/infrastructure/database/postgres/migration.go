// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/cart"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/inventory"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/order"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order matters: base tables first
	models := []interface{}{
		&user.User{},

		&product.Category{},
		&product.Product{},
		&product.ProductVariant{},
		&product.Review{},

		&inventory.StockMovement{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&order.OrderStatusHistory{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Payment indexes
		"CREATE INDEX IF NOT EXISTS idx_payments_order_status ON payments(order_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at DESC)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Stock movement indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_product_created ON stock_movements(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements(reference)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_sku_created ON reviews(sku, created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedDemoProducts(); err != nil {
		return fmt.Errorf("failed to seed demo products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates the default merch categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []product.Category{
		{Name: "Apparel", RequiresSize: true},
		{Name: "Accessories"},
		{Name: "Stationery"},
	}

	for _, category := range categories {
		var existing product.Category
		err := m.db.Where("name = ?", category.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := m.db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}
			log.Printf("Created category: %s", category.Name)
		}
	}
	return nil
}

// seedAdminUser creates the default admin account
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var count int64
	if err := m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin@AlcherStore1!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := user.User{
		Email:    "admin@alcherstore.in",
		Password: string(hash),
		Name:     "Store Admin",
		IsAdmin:  true,
		IsActive: true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("Created admin user (change the password after first login)")
	return nil
}

// seedDemoProducts creates the demo merch catalog
func (m *Migration) seedDemoProducts() error {
	log.Println("📦 Seeding demo products...")

	var apparel, accessories product.Category
	m.db.Where("name = ?", "Apparel").First(&apparel)
	m.db.Where("name = ?", "Accessories").First(&accessories)

	teeStock := func(s, ms, l, xl int) []product.ProductVariant {
		return []product.ProductVariant{
			{Size: "S", Stock: s},
			{Size: "M", Stock: ms},
			{Size: "L", Stock: l},
			{Size: "XL", Stock: xl},
		}
	}
	flat := func(stock int) []product.ProductVariant {
		return []product.ProductVariant{{Stock: stock}}
	}

	products := []product.Product{
		{
			SKU: "ALCH001", Name: "Classic Logo Tee", Price: 499,
			Description: "Regular fit cotton tee with the festival logo.",
			HasSize:     true, CategoryID: &apparel.ID, IsActive: true,
			Variants: teeStock(20, 30, 30, 15),
		},
		{
			SKU: "ALCH002", Name: "Festival Hoodie", Price: 1299,
			Description: "Heavyweight fleece hoodie, unisex fit.",
			HasSize:     true, CategoryID: &apparel.ID, IsActive: true,
			Variants: teeStock(10, 15, 15, 10),
		},
		{
			SKU: "ALCH003", Name: "Oversized Graphic Tee", Price: 699,
			Description: "Oversized drop-shoulder tee with back print.",
			HasSize:     true, CategoryID: &apparel.ID, IsActive: true,
			Variants: teeStock(15, 20, 20, 10),
		},
		{
			SKU: "ALCH004", Name: "Snapback Cap", Price: 299,
			Description: "Adjustable snapback with embroidered logo.",
			CategoryID:  &accessories.ID, IsActive: true,
			Variants: flat(50),
		},
		{
			SKU: "ALCH005", Name: "Poster Pack", Price: 99,
			Description: "Set of three A3 festival art posters.",
			CategoryID:  &accessories.ID, IsActive: true,
			Variants: flat(100),
		},
		{
			SKU: "ALCH006", Name: "Canvas Tote Bag", Price: 349,
			Description: "Screen-printed cotton canvas tote.",
			CategoryID:  &accessories.ID, IsActive: true,
			Variants: flat(40),
		},
		{
			SKU: "ALCH007", Name: "Steel Sipper Bottle", Price: 399,
			Description: "750ml insulated steel bottle.",
			CategoryID:  &accessories.ID, IsActive: true,
			Variants: flat(35),
		},
	}

	for _, p := range products {
		var count int64
		if err := m.db.Model(&product.Product{}).Where("sku = ?", p.SKU).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := m.db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create product %s: %w", p.SKU, err)
		}
		log.Printf("Created product: %s (%s)", p.SKU, p.Name)
	}
	return nil
}
