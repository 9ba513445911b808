package models

import (
    "time"
)

type HelpStatus string

const (
    HelpOpen       HelpStatus = "Open"
    HelpInProgress HelpStatus = "InProgress"
    HelpClosed     HelpStatus = "Closed"
)

type HelpReport struct {
    ID          uint           `json:"id" gorm:"primaryKey"`
    Title       string         `json:"title" gorm:"not null"`
    Message     string         `json:"message" gorm:"not null"`
    Status      HelpStatus     `json:"status" gorm:"default:Open"`
    CreatedByID uint           `json:"createdById" gorm:"not null"`
    CreatedBy   *User          `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
    UpdatedByID *uint          `json:"updatedById"`
    UpdatedBy   *User          `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
    CreatedAt   time.Time      `json:"createdAt"`
    UpdatedAt   *time.Time     `json:"updatedAt"`
}

type HelpReportRequest struct {
    Title   string     `json:"title" validate:"required,max=150"`
    Message string     `json:"message" validate:"required,max=1000"`
    Status  HelpStatus `json:"status" validate:"omitempty,oneof=Open InProgress Closed"`
}

type HelpReportUpdateRequest struct {
    Title   string     `json:"title" validate:"required,max=150"`
    Message string     `json:"message" validate:"required,max=1000"`
    Status  HelpStatus `json:"status" validate:"required,oneof=Open InProgress Closed"`
}
