package database

import (
    "fmt"
    "log"
    "strings"

    "loanms-go/config"
    "loanms-go/models"
    "loanms-go/utils"

    "gorm.io/gorm"
)

// Seed creates the default admin account and the starter feedback
// questions when the respective tables are empty.
func Seed(db *gorm.DB, cfg *config.Config) error {
    if err := seedAdmin(db, cfg); err != nil {
        return err
    }
    return seedFeedbackQuestions(db)
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
    var count int64
    if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
        return fmt.Errorf("failed to check for admin user: %w", err)
    }
    if count > 0 {
        return nil
    }

    hashed, err := utils.HashPassword(cfg.AdminPassword)
    if err != nil {
        return fmt.Errorf("failed to hash admin password: %w", err)
    }

    admin := models.User{
        FullName:       "System Administrator",
        Email:          strings.ToLower(cfg.AdminEmail),
        PhoneNumber:    "0000000000",
        Password:       hashed,
        Role:           models.RoleAdmin,
        ApprovalStatus: models.ApprovalApproved,
        IsActive:       true,
    }

    if err := db.Create(&admin).Error; err != nil {
        return fmt.Errorf("failed to create default admin user: %w", err)
    }

    log.Printf("Default admin user created with email %s", admin.Email)
    return nil
}

func seedFeedbackQuestions(db *gorm.DB) error {
    var count int64
    if err := db.Model(&models.FeedbackQuestion{}).Count(&count).Error; err != nil {
        return fmt.Errorf("failed to check feedback questions: %w", err)
    }
    if count > 0 {
        return nil
    }

    questions := []models.FeedbackQuestion{
        {Question: "How satisfied are you with the loan application process?", IsActive: true},
        {Question: "Was the field officer helpful during verification?", IsActive: true},
    }

    if err := db.Create(&questions).Error; err != nil {
        return fmt.Errorf("failed to seed feedback questions: %w", err)
    }
    return nil
}
