package database

import (
    "loanms-go/models"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
    db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Warn),
    })
    if err != nil {
        return nil, err
    }

    if err := Migrate(db); err != nil {
        return nil, err
    }

    return db, nil
}

func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &models.User{},
        &models.LoanApplication{},
        &models.BackgroundVerification{},
        &models.LoanVerification{},
        &models.HelpReport{},
        &models.FeedbackQuestion{},
        &models.FeedbackResponse{},
    )
}
