package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/rushikeshdhande/Library-Management-System/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Borrow{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
