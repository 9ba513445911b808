package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "loanms-go/middleware"
    "loanms-go/models"
    "loanms-go/utils"
)

func customerSelf(w http.ResponseWriter, r *http.Request) (uint, bool) {
    claims := middleware.GetUserFromContext(r)
    customerID := pathID(r, "customerId")
    if claims == nil || claims.UserID != customerID {
        sendError(w, http.StatusForbidden, "You may only act on your own account.")
        return 0, false
    }
    return customerID, true
}

// ApplyForLoan submits a new loan application. The customer account must
// already be approved by an admin.
func (h *Handlers) ApplyForLoan(w http.ResponseWriter, r *http.Request) {
    customerID, ok := customerSelf(w, r)
    if !ok {
        return
    }

    var req models.LoanApplicationRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    customer, err := h.findCustomer(customerID)
    if err != nil {
        sendError(w, http.StatusNotFound, "Customer not found.")
        return
    }

    if customer.ApprovalStatus != models.ApprovalApproved {
        sendError(w, http.StatusBadRequest, "Customer is not approved yet.")
        return
    }

    loan := models.LoanApplication{
        Reference:    h.generateReference(),
        CustomerID:   customerID,
        Amount:       req.Amount,
        TenureMonths: req.TenureMonths,
        LoanType:     req.LoanType,
        Purpose:      req.Purpose,
        Status:       models.LoanSubmitted,
    }

    if err := h.db.WithContext(r.Context()).Create(&loan).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to create loan application")
        return
    }

    log.Printf("Customer %d submitted loan application %d (%s)", customerID, loan.ID, loan.Reference)

    sendJSON(w, http.StatusCreated, loan)
}

func (h *Handlers) GetCustomerLoans(w http.ResponseWriter, r *http.Request) {
    customerID, ok := customerSelf(w, r)
    if !ok {
        return
    }

    if _, err := h.findCustomer(customerID); err != nil {
        sendError(w, http.StatusNotFound, "Customer not found.")
        return
    }

    var loans []models.LoanApplication
    if err := h.db.WithContext(r.Context()).
        Preload("AssignedOfficer").
        Preload("BackgroundVerification").
        Preload("LoanVerification").
        Where("customer_id = ?", customerID).
        Order("created_at DESC").
        Find(&loans).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch loan applications")
        return
    }

    sendJSON(w, http.StatusOK, loans)
}

func (h *Handlers) CreateHelpReport(w http.ResponseWriter, r *http.Request) {
    customerID, ok := customerSelf(w, r)
    if !ok {
        return
    }

    var req models.HelpReportRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    if _, err := h.findCustomer(customerID); err != nil {
        sendError(w, http.StatusNotFound, "Customer not found.")
        return
    }

    report := models.HelpReport{
        Title:       req.Title,
        Message:     req.Message,
        Status:      models.HelpOpen,
        CreatedByID: customerID,
    }

    if err := h.db.WithContext(r.Context()).Create(&report).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to create help report")
        return
    }

    sendJSON(w, http.StatusCreated, report)
}

// AddFeedback stores a customer's answer to an active feedback question.
// Answers against inactive or unknown questions are rejected outright.
func (h *Handlers) AddFeedback(w http.ResponseWriter, r *http.Request) {
    customerID, ok := customerSelf(w, r)
    if !ok {
        return
    }

    var req models.FeedbackResponseRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    if _, err := h.findCustomer(customerID); err != nil {
        sendError(w, http.StatusNotFound, "Customer not found.")
        return
    }

    var count int64
    if err := h.db.WithContext(r.Context()).
        Model(&models.FeedbackQuestion{}).
        Where("id = ? AND is_active = ?", req.QuestionID, true).
        Count(&count).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to check feedback question")
        return
    }
    if count == 0 {
        sendError(w, http.StatusBadRequest, "Feedback question is invalid.")
        return
    }

    response := models.FeedbackResponse{
        QuestionID: req.QuestionID,
        CustomerID: customerID,
        Answer:     req.Answer,
    }

    if err := h.db.WithContext(r.Context()).Create(&response).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to store feedback response")
        return
    }

    sendJSON(w, http.StatusCreated, response)
}
