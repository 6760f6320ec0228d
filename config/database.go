package config

import (
	"fmt"
	"os"

	"github.com/gameonmart/GameOnMart/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// uuid_generate_v4 is not needed (ids are set client-side), but the
	// uuid column type requires the extension on older Postgres versions
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not ensure uuid-ossp extension: %v\n", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Otp{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.Payment{},
		&models.Order{},
		&models.OrderItem{},
		&models.RefundExchange{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
