package models

import (
    "time"

    "gorm.io/gorm"
)

type UserRole string

const (
    RoleAdmin        UserRole = "Admin"
    RoleCustomer     UserRole = "Customer"
    RoleLoanOfficer  UserRole = "LoanOfficer"
    RoleFieldOfficer UserRole = "FieldOfficer"
)

// IsOfficer reports whether the role may be bound to a verification track.
func (r UserRole) IsOfficer() bool {
    return r == RoleLoanOfficer || r == RoleFieldOfficer
}

type ApprovalStatus string

const (
    ApprovalPending  ApprovalStatus = "Pending"
    ApprovalApproved ApprovalStatus = "Approved"
    ApprovalRejected ApprovalStatus = "Rejected"
)

type User struct {
    ID             uint           `json:"id" gorm:"primaryKey"`
    FullName       string         `json:"fullName" gorm:"not null"`
    Email          string         `json:"email" gorm:"uniqueIndex;not null"`
    PhoneNumber    string         `json:"phoneNumber" gorm:"not null"`
    Password       string         `json:"-" gorm:"not null"`
    Role           UserRole       `json:"role" gorm:"not null"`
    ApprovalStatus ApprovalStatus `json:"approvalStatus" gorm:"default:Pending"`
    IsActive       bool           `json:"isActive" gorm:"default:true"`
    CreatedAt      time.Time      `json:"createdAt"`
    UpdatedAt      *time.Time     `json:"updatedAt"`
    DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

type RegisterRequest struct {
    FullName    string   `json:"fullName" validate:"required,min=2,max=150"`
    Email       string   `json:"email" validate:"required,email"`
    Password    string   `json:"password" validate:"required,min=6"`
    PhoneNumber string   `json:"phoneNumber" validate:"required,min=10,max=15"`
    Role        UserRole `json:"role" validate:"required,oneof=Admin Customer LoanOfficer FieldOfficer"`
}

type LoginRequest struct {
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required"`
}

// UserSummary is the auth response shape; it never carries the credential.
type UserSummary struct {
    ID             uint           `json:"id"`
    FullName       string         `json:"fullName"`
    Email          string         `json:"email"`
    Role           UserRole       `json:"role"`
    ApprovalStatus ApprovalStatus `json:"approvalStatus"`
}

type LoginResponse struct {
    Token string      `json:"token"`
    User  UserSummary `json:"user"`
}

type ApprovalRequest struct {
    Approve *bool `json:"approve" validate:"required"`
}

func (u *User) Summary() UserSummary {
    return UserSummary{
        ID:             u.ID,
        FullName:       u.FullName,
        Email:          u.Email,
        Role:           u.Role,
        ApprovalStatus: u.ApprovalStatus,
    }
}
