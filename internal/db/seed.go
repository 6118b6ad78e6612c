package db

import (
	"gifty/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Seed inserts the demo user and merchants the dashboard expects.
// Inserts are idempotent so the command can run repeatedly.
func Seed(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash demo password: %v", err)
	}
	// Demo user anchoring the seeded merchants
	demo := domain.User{
		Username: "demo",             // Demo account
		Email:    "demo@gifty.local", // Demo email
		Password: string(hash),       // Hashed demo password
		Name:     "Demo User",        // Display name
		Role:     "merchant",         // Merchant-facing demo account
	}
	if err := db.Where("username = ?", demo.Username).FirstOrCreate(&demo).Error; err != nil {
		logrus.Fatalf("failed to seed demo user: %v", err)
	}
	// Demo merchants for the POS simulation
	merchants := []domain.Merchant{
		{UserID: demo.ID, BusinessName: "Corner Coffee", Category: "cafe", IsActive: true},
		{UserID: demo.ID, BusinessName: "Page & Spine Books", Category: "retail", IsActive: true},
		{UserID: demo.ID, BusinessName: "Luna Trattoria", Category: "restaurant", IsActive: true},
	}
	for i := range merchants {
		if err := db.Where("business_name = ?", merchants[i].BusinessName).
			FirstOrCreate(&merchants[i]).Error; err != nil {
			logrus.Fatalf("failed to seed merchant %s: %v", merchants[i].BusinessName, err)
		}
	}
	logrus.Info("Seed completed.") // Log successful seed
}
