package models

import (
    "time"

    "gorm.io/gorm"
)

type LoanStatus string

const (
    LoanDraft       LoanStatus = "Draft"
    LoanSubmitted   LoanStatus = "Submitted"
    LoanUnderReview LoanStatus = "UnderReview"
    LoanApproved    LoanStatus = "Approved"
    LoanRejected    LoanStatus = "Rejected"
)

type VerificationStatus string

const (
    VerificationPending    VerificationStatus = "Pending"
    VerificationAssigned   VerificationStatus = "Assigned"
    VerificationInProgress VerificationStatus = "InProgress"
    VerificationCompleted  VerificationStatus = "Completed"
    VerificationFailed     VerificationStatus = "Failed"
)

type LoanApplication struct {
    ID                uint       `json:"id" gorm:"primaryKey"`
    Reference         string     `json:"reference" gorm:"uniqueIndex;not null"`
    CustomerID        uint       `json:"customerId" gorm:"not null"`
    Customer          *User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
    AssignedOfficerID *uint      `json:"assignedOfficerId"`
    AssignedOfficer   *User      `json:"assignedOfficer,omitempty" gorm:"foreignKey:AssignedOfficerID"`
    Amount            float64    `json:"amount" gorm:"not null"`
    TenureMonths      int        `json:"tenureMonths" gorm:"not null"`
    LoanType          string     `json:"loanType" gorm:"not null"`
    Purpose           string     `json:"purpose"`
    Status            LoanStatus `json:"status" gorm:"default:Submitted"`

    BackgroundVerification *BackgroundVerification `json:"backgroundVerification,omitempty" gorm:"foreignKey:LoanApplicationID"`
    LoanVerification       *LoanVerification       `json:"loanVerification,omitempty" gorm:"foreignKey:LoanApplicationID"`

    CreatedAt time.Time      `json:"createdAt"`
    UpdatedAt *time.Time     `json:"updatedAt"`
    DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type BackgroundVerification struct {
    ID                uint               `json:"id" gorm:"primaryKey"`
    LoanApplicationID uint               `json:"loanApplicationId" gorm:"uniqueIndex;not null"`
    LoanApplication   *LoanApplication   `json:"loanApplication,omitempty" gorm:"foreignKey:LoanApplicationID"`
    OfficerID         *uint              `json:"officerId"`
    Officer           *User              `json:"officer,omitempty" gorm:"foreignKey:OfficerID"`
    Notes             string             `json:"notes"`
    Status            VerificationStatus `json:"status" gorm:"default:Pending"`
    CompletedOn       *time.Time         `json:"completedOn"`
    CreatedAt         time.Time          `json:"createdAt"`
    UpdatedAt         *time.Time         `json:"updatedAt"`
}

type LoanVerification struct {
    ID                  uint               `json:"id" gorm:"primaryKey"`
    LoanApplicationID   uint               `json:"loanApplicationId" gorm:"uniqueIndex;not null"`
    LoanApplication     *LoanApplication   `json:"loanApplication,omitempty" gorm:"foreignKey:LoanApplicationID"`
    OfficerID           *uint              `json:"officerId"`
    Officer             *User              `json:"officer,omitempty" gorm:"foreignKey:OfficerID"`
    VerificationSummary string             `json:"verificationSummary"`
    Status              VerificationStatus `json:"status" gorm:"default:Pending"`
    CompletedOn         *time.Time         `json:"completedOn"`
    CreatedAt           time.Time          `json:"createdAt"`
    UpdatedAt           *time.Time         `json:"updatedAt"`
}

type LoanApplicationRequest struct {
    Amount       float64 `json:"amount" validate:"required,gt=0"`
    TenureMonths int     `json:"tenureMonths" validate:"required,min=1,max=360"`
    LoanType     string  `json:"loanType" validate:"required,max=100"`
    Purpose      string  `json:"purpose" validate:"max=500"`
}

type AssignOfficerRequest struct {
    LoanApplicationID uint `json:"loanApplicationId" validate:"required"`
    OfficerID         uint `json:"officerId" validate:"required"`
}

type VerificationUpdateRequest struct {
    LoanApplicationID uint               `json:"loanApplicationId" validate:"required"`
    Notes             string             `json:"notes" validate:"required"`
    Status            VerificationStatus `json:"status" validate:"required,oneof=Pending Assigned InProgress Completed Failed"`
}
