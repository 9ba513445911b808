package models

import (
    "time"
)

type FeedbackQuestion struct {
    ID        uint               `json:"id" gorm:"primaryKey"`
    Question  string             `json:"question" gorm:"not null"`
    IsActive  bool               `json:"isActive"`
    Responses []FeedbackResponse `json:"responses,omitempty" gorm:"foreignKey:QuestionID"`
    CreatedAt time.Time          `json:"createdAt"`
    UpdatedAt *time.Time         `json:"updatedAt"`
}

type FeedbackResponse struct {
    ID         uint              `json:"id" gorm:"primaryKey"`
    QuestionID uint              `json:"questionId" gorm:"not null"`
    Question   *FeedbackQuestion `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
    CustomerID uint              `json:"customerId" gorm:"not null"`
    Customer   *User             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
    Answer     string            `json:"answer" gorm:"not null"`
    CreatedAt  time.Time         `json:"createdAt"`
    UpdatedAt  *time.Time        `json:"updatedAt"`
}

type FeedbackQuestionRequest struct {
    Question string `json:"question" validate:"required,max=300"`
    IsActive *bool  `json:"isActive"`
}

type FeedbackResponseRequest struct {
    QuestionID uint   `json:"questionId" validate:"required"`
    Answer     string `json:"answer" validate:"required,max=1000"`
}
