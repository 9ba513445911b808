package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "time"

    "loanms-go/middleware"
    "loanms-go/models"
    "loanms-go/utils"
)

func (h *Handlers) GetCustomers(w http.ResponseWriter, r *http.Request) {
    query := h.db.WithContext(r.Context()).Where("role = ?", models.RoleCustomer)
    if status := r.URL.Query().Get("status"); status != "" {
        query = query.Where("approval_status = ?", status)
    }

    var customers []models.User
    if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch customers")
        return
    }

    sendJSON(w, http.StatusOK, customers)
}

func (h *Handlers) SetCustomerApproval(w http.ResponseWriter, r *http.Request) {
    var req models.ApprovalRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    customer, err := h.findCustomer(pathID(r, "customerId"))
    if err != nil {
        sendError(w, http.StatusNotFound, "Customer not found.")
        return
    }

    h.applyApproval(w, r, customer, *req.Approve)
}

func (h *Handlers) GetOfficers(w http.ResponseWriter, r *http.Request) {
    query := h.db.WithContext(r.Context()).Where("role IN ?",
        []models.UserRole{models.RoleLoanOfficer, models.RoleFieldOfficer})
    if status := r.URL.Query().Get("status"); status != "" {
        query = query.Where("approval_status = ?", status)
    }

    var officers []models.User
    if err := query.Order("created_at DESC").Find(&officers).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch officers")
        return
    }

    sendJSON(w, http.StatusOK, officers)
}

func (h *Handlers) SetOfficerApproval(w http.ResponseWriter, r *http.Request) {
    var req models.ApprovalRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    officer, err := h.findOfficer(pathID(r, "officerId"))
    if err != nil {
        sendError(w, http.StatusNotFound, "Officer not found.")
        return
    }

    h.applyApproval(w, r, officer, *req.Approve)
}

func (h *Handlers) applyApproval(w http.ResponseWriter, r *http.Request, user *models.User, approve bool) {
    if approve {
        user.ApprovalStatus = models.ApprovalApproved
    } else {
        user.ApprovalStatus = models.ApprovalRejected
    }

    if err := h.db.WithContext(r.Context()).Save(user).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to update approval status")
        return
    }

    claims := middleware.GetUserFromContext(r)
    log.Printf("Admin %d set approval of user %d (%s) to %s", claims.UserID, user.ID, user.Role, user.ApprovalStatus)

    sendJSON(w, http.StatusOK, user)
}

func (h *Handlers) GetLoanRequests(w http.ResponseWriter, r *http.Request) {
    query := h.db.WithContext(r.Context()).
        Preload("Customer").
        Preload("AssignedOfficer").
        Preload("BackgroundVerification").
        Preload("LoanVerification")
    if status := r.URL.Query().Get("status"); status != "" {
        query = query.Where("status = ?", status)
    }

    var loans []models.LoanApplication
    if err := query.Order("created_at DESC").Find(&loans).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch loan requests")
        return
    }

    sendJSON(w, http.StatusOK, loans)
}

// AssignBackgroundVerification binds an officer to the background track of
// a loan. The sub-record is created on first assignment; re-assignment
// overwrites the officer and resets progress to Assigned.
func (h *Handlers) AssignBackgroundVerification(w http.ResponseWriter, r *http.Request) {
    req, officer, loan, ok := h.prepareAssignment(w, r)
    if !ok {
        return
    }

    tx := h.db.WithContext(r.Context()).Begin()
    defer func() {
        if p := recover(); p != nil {
            tx.Rollback()
        }
    }()

    loan.AssignedOfficerID = &officer.ID
    if err := tx.Save(loan).Error; err != nil {
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to assign officer")
        return
    }

    var verification models.BackgroundVerification
    err := tx.Where("loan_application_id = ?", loan.ID).First(&verification).Error
    switch {
    case isNotFound(err):
        verification = models.BackgroundVerification{
            LoanApplicationID: loan.ID,
            OfficerID:         &officer.ID,
            Status:            models.VerificationAssigned,
            Notes:             "Background verification assigned.",
        }
        if err := tx.Create(&verification).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to create background verification")
            return
        }
    case err != nil:
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to load background verification")
        return
    default:
        verification.OfficerID = &officer.ID
        verification.Status = models.VerificationAssigned
        if err := tx.Save(&verification).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to update background verification")
            return
        }
    }

    if err := tx.Commit().Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to commit assignment")
        return
    }

    log.Printf("Officer %d assigned to background verification of loan %d", req.OfficerID, loan.ID)
    loan.BackgroundVerification = &verification
    sendJSON(w, http.StatusOK, loan)
}

// AssignLoanVerification is the loan-track counterpart of
// AssignBackgroundVerification; it shares the loan-level assignedOfficer
// field, so the latest assignment on either track wins there.
func (h *Handlers) AssignLoanVerification(w http.ResponseWriter, r *http.Request) {
    req, officer, loan, ok := h.prepareAssignment(w, r)
    if !ok {
        return
    }

    tx := h.db.WithContext(r.Context()).Begin()
    defer func() {
        if p := recover(); p != nil {
            tx.Rollback()
        }
    }()

    loan.AssignedOfficerID = &officer.ID
    if err := tx.Save(loan).Error; err != nil {
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to assign officer")
        return
    }

    var verification models.LoanVerification
    err := tx.Where("loan_application_id = ?", loan.ID).First(&verification).Error
    switch {
    case isNotFound(err):
        verification = models.LoanVerification{
            LoanApplicationID:   loan.ID,
            OfficerID:           &officer.ID,
            Status:              models.VerificationAssigned,
            VerificationSummary: "Loan verification assigned.",
        }
        if err := tx.Create(&verification).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to create loan verification")
            return
        }
    case err != nil:
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to load loan verification")
        return
    default:
        verification.OfficerID = &officer.ID
        verification.Status = models.VerificationAssigned
        if err := tx.Save(&verification).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to update loan verification")
            return
        }
    }

    if err := tx.Commit().Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to commit assignment")
        return
    }

    log.Printf("Officer %d assigned to loan verification of loan %d", req.OfficerID, loan.ID)
    loan.LoanVerification = &verification
    sendJSON(w, http.StatusOK, loan)
}

// prepareAssignment validates the request and loads both sides of an
// officer assignment. A wrong or missing officer is a validation problem
// (400); a missing loan is 404.
func (h *Handlers) prepareAssignment(w http.ResponseWriter, r *http.Request) (*models.AssignOfficerRequest, *models.User, *models.LoanApplication, bool) {
    var req models.AssignOfficerRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return nil, nil, nil, false
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return nil, nil, nil, false
    }

    officer, err := h.findOfficer(req.OfficerID)
    if err != nil {
        sendError(w, http.StatusBadRequest, "Officer not found or invalid role.")
        return nil, nil, nil, false
    }

    var loan models.LoanApplication
    if err := h.db.WithContext(r.Context()).First(&loan, req.LoanApplicationID).Error; err != nil {
        sendError(w, http.StatusNotFound, "Loan request not found.")
        return nil, nil, nil, false
    }

    return &req, officer, &loan, true
}

func (h *Handlers) GetBackgroundVerifications(w http.ResponseWriter, r *http.Request) {
    var verifications []models.BackgroundVerification
    if err := h.db.WithContext(r.Context()).
        Preload("LoanApplication").
        Preload("LoanApplication.Customer").
        Preload("Officer").
        Order("created_at DESC").
        Find(&verifications).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch background verifications")
        return
    }

    sendJSON(w, http.StatusOK, verifications)
}

func (h *Handlers) DeleteBackgroundVerification(w http.ResponseWriter, r *http.Request) {
    var verification models.BackgroundVerification
    if err := h.db.WithContext(r.Context()).First(&verification, pathID(r, "id")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Background verification not found.")
        return
    }

    if err := h.db.WithContext(r.Context()).Delete(&verification).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to delete background verification")
        return
    }

    w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetLoanVerifications(w http.ResponseWriter, r *http.Request) {
    var verifications []models.LoanVerification
    if err := h.db.WithContext(r.Context()).
        Preload("LoanApplication").
        Preload("LoanApplication.Customer").
        Preload("Officer").
        Order("created_at DESC").
        Find(&verifications).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch loan verifications")
        return
    }

    sendJSON(w, http.StatusOK, verifications)
}

func (h *Handlers) DeleteLoanVerification(w http.ResponseWriter, r *http.Request) {
    var verification models.LoanVerification
    if err := h.db.WithContext(r.Context()).First(&verification, pathID(r, "id")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Loan verification not found.")
        return
    }

    if err := h.db.WithContext(r.Context()).Delete(&verification).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to delete loan verification")
        return
    }

    w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateHelpReport(w http.ResponseWriter, r *http.Request) {
    var req models.HelpReportUpdateRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    var report models.HelpReport
    if err := h.db.WithContext(r.Context()).First(&report, pathID(r, "helpId")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Help report not found.")
        return
    }

    claims := middleware.GetUserFromContext(r)
    now := time.Now().UTC()

    report.Title = req.Title
    report.Message = req.Message
    report.Status = req.Status
    report.UpdatedByID = &claims.UserID
    report.UpdatedAt = &now

    if err := h.db.WithContext(r.Context()).Save(&report).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to update help report")
        return
    }

    sendJSON(w, http.StatusOK, report)
}

func (h *Handlers) DeleteHelpReport(w http.ResponseWriter, r *http.Request) {
    var report models.HelpReport
    if err := h.db.WithContext(r.Context()).First(&report, pathID(r, "helpId")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Help report not found.")
        return
    }

    if err := h.db.WithContext(r.Context()).Delete(&report).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to delete help report")
        return
    }

    w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetFeedbackQuestions(w http.ResponseWriter, r *http.Request) {
    var questions []models.FeedbackQuestion
    if err := h.db.WithContext(r.Context()).
        Preload("Responses").
        Order("created_at DESC").
        Find(&questions).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch feedback questions")
        return
    }

    sendJSON(w, http.StatusOK, questions)
}

func (h *Handlers) AddFeedbackQuestion(w http.ResponseWriter, r *http.Request) {
    var req models.FeedbackQuestionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }

    question := models.FeedbackQuestion{
        Question: req.Question,
        IsActive: active,
    }

    if err := h.db.WithContext(r.Context()).Create(&question).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to create feedback question")
        return
    }

    sendJSON(w, http.StatusCreated, question)
}

func (h *Handlers) UpdateFeedbackQuestion(w http.ResponseWriter, r *http.Request) {
    var req models.FeedbackQuestionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    var question models.FeedbackQuestion
    if err := h.db.WithContext(r.Context()).First(&question, pathID(r, "questionId")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Feedback question not found.")
        return
    }

    now := time.Now().UTC()
    question.Question = req.Question
    if req.IsActive != nil {
        question.IsActive = *req.IsActive
    }
    question.UpdatedAt = &now

    if err := h.db.WithContext(r.Context()).Save(&question).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to update feedback question")
        return
    }

    sendJSON(w, http.StatusOK, question)
}

func (h *Handlers) DeleteFeedbackQuestion(w http.ResponseWriter, r *http.Request) {
    var question models.FeedbackQuestion
    if err := h.db.WithContext(r.Context()).First(&question, pathID(r, "questionId")).Error; err != nil {
        sendError(w, http.StatusNotFound, "Feedback question not found.")
        return
    }

    if err := h.db.WithContext(r.Context()).Delete(&question).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to delete feedback question")
        return
    }

    w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetFeedbackResponses(w http.ResponseWriter, r *http.Request) {
    var responses []models.FeedbackResponse
    if err := h.db.WithContext(r.Context()).
        Preload("Customer").
        Preload("Question").
        Order("created_at DESC").
        Find(&responses).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch feedback responses")
        return
    }

    sendJSON(w, http.StatusOK, responses)
}
