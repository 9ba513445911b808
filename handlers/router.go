package handlers

import (
    "github.com/gorilla/mux"

    "loanms-go/middleware"
    "loanms-go/models"
)

// NewRouter wires every role-scoped endpoint. Global middleware (CORS,
// rate limiting) is applied by the caller.
func NewRouter(h *Handlers) *mux.Router {
    r := mux.NewRouter()

    // Public routes
    r.HandleFunc("/auth/register", h.Register).Methods("POST")
    r.HandleFunc("/auth/login", h.Login).Methods("POST")
    r.HandleFunc("/health", h.HealthCheck).Methods("GET")

    // Admin routes
    admin := r.PathPrefix("/admin").Subrouter()
    admin.Use(middleware.JWTAuth)
    admin.Use(middleware.RequireRole(models.RoleAdmin))
    admin.HandleFunc("/customers", h.GetCustomers).Methods("GET")
    admin.HandleFunc("/customers/{customerId}/approval", h.SetCustomerApproval).Methods("PUT")
    admin.HandleFunc("/officers", h.GetOfficers).Methods("GET")
    admin.HandleFunc("/officers/{officerId}/approval", h.SetOfficerApproval).Methods("PUT")
    admin.HandleFunc("/loan-requests", h.GetLoanRequests).Methods("GET")
    admin.HandleFunc("/loan-requests/background/assign", h.AssignBackgroundVerification).Methods("POST")
    admin.HandleFunc("/loan-requests/verification/assign", h.AssignLoanVerification).Methods("POST")
    admin.HandleFunc("/background-verifications", h.GetBackgroundVerifications).Methods("GET")
    admin.HandleFunc("/background-verifications/{id}", h.DeleteBackgroundVerification).Methods("DELETE")
    admin.HandleFunc("/loan-verifications", h.GetLoanVerifications).Methods("GET")
    admin.HandleFunc("/loan-verifications/{id}", h.DeleteLoanVerification).Methods("DELETE")
    admin.HandleFunc("/help", h.GetHelpReports).Methods("GET")
    admin.HandleFunc("/help/{helpId}", h.UpdateHelpReport).Methods("PUT")
    admin.HandleFunc("/help/{helpId}", h.DeleteHelpReport).Methods("DELETE")
    admin.HandleFunc("/feedback/questions", h.GetFeedbackQuestions).Methods("GET")
    admin.HandleFunc("/feedback/questions", h.AddFeedbackQuestion).Methods("POST")
    admin.HandleFunc("/feedback/questions/{questionId}", h.UpdateFeedbackQuestion).Methods("PUT")
    admin.HandleFunc("/feedback/questions/{questionId}", h.DeleteFeedbackQuestion).Methods("DELETE")
    admin.HandleFunc("/feedback/responses", h.GetFeedbackResponses).Methods("GET")

    // Officer routes
    officer := r.PathPrefix("/officer").Subrouter()
    officer.Use(middleware.JWTAuth)
    officer.Use(middleware.RequireRole(models.RoleLoanOfficer, models.RoleFieldOfficer))
    officer.HandleFunc("/help", h.GetHelpReports).Methods("GET")
    officer.HandleFunc("/{officerId}/loans", h.GetAssignedLoans).Methods("GET")
    officer.HandleFunc("/{officerId}/background-verifications", h.UpdateBackgroundVerification).Methods("PUT")
    officer.HandleFunc("/{officerId}/loan-verifications", h.UpdateLoanVerification).Methods("PUT")

    // Customer routes
    customer := r.PathPrefix("/customer").Subrouter()
    customer.Use(middleware.JWTAuth)
    customer.Use(middleware.RequireRole(models.RoleCustomer))
    customer.HandleFunc("/help", h.GetHelpReports).Methods("GET")
    customer.HandleFunc("/{customerId}/loans", h.ApplyForLoan).Methods("POST")
    customer.HandleFunc("/{customerId}/loans", h.GetCustomerLoans).Methods("GET")
    customer.HandleFunc("/{customerId}/help", h.CreateHelpReport).Methods("POST")
    customer.HandleFunc("/{customerId}/feedback", h.AddFeedback).Methods("POST")

    return r
}
