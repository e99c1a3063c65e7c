package database

import (
	"fmt"
	"guruschool_backend/internal/config"
	"guruschool_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// duplicate-key errors must surface as gorm.ErrDuplicatedKey so the
		// enrollment insert can treat them as "already enrolled"
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Profile{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.CoursePricing{},
		&model.Discount{},
		&model.Enrollment{},
		&model.TeacherApplication{},
		&model.Invite{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
