package database

import (
	"time"

	"billing-backend/internal/config"
	"billing-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the MySQL handle and syncs the schema. The retry loop covers
// container startup ordering where the database comes up after the app.
func Connect(dsn string) {
	log := config.GetLogger()

	if dsn == "" {
		log.Fatal("DB_DSN not set. Please configure your database.")
	}

	var err error
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		log.Warnf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	log.Info("Database connected and schema synced")
}

// Migrate syncs the schema. Exposed so tests can run it against their own
// handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.LineItem{},
	)
}
