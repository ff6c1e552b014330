package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/oknkahraman/appustabul/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.WorkerProfile{},
		&model.EmployerProfile{},
		&model.SkillCategory{},
		&model.WorkerSkill{},
		&model.Job{},
		&model.Application{},
		&model.Rating{},
		&model.Notification{},
		&model.CompletionDeadline{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
