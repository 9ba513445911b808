package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "time"

    "loanms-go/lifecycle"
    "loanms-go/middleware"
    "loanms-go/models"
    "loanms-go/utils"
)

// officerSelf enforces that the authenticated officer is acting on their
// own path segment. Acting on another officer's routes is an authorization
// failure, never a not-found.
func officerSelf(w http.ResponseWriter, r *http.Request) (uint, bool) {
    claims := middleware.GetUserFromContext(r)
    officerID := pathID(r, "officerId")
    if claims == nil || claims.UserID != officerID {
        sendError(w, http.StatusForbidden, "You may only act on your own assignments.")
        return 0, false
    }
    return officerID, true
}

func (h *Handlers) GetAssignedLoans(w http.ResponseWriter, r *http.Request) {
    officerID, ok := officerSelf(w, r)
    if !ok {
        return
    }

    if _, err := h.findOfficer(officerID); err != nil {
        sendError(w, http.StatusNotFound, "Officer not found.")
        return
    }

    query := h.db.WithContext(r.Context()).
        Preload("Customer").
        Preload("BackgroundVerification").
        Preload("LoanVerification").
        Where("assigned_officer_id = ?", officerID)
    if status := r.URL.Query().Get("status"); status != "" {
        query = query.Where("status = ?", status)
    }

    var loans []models.LoanApplication
    if err := query.Order("created_at DESC").Find(&loans).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch assigned loans")
        return
    }

    sendJSON(w, http.StatusOK, loans)
}

// UpdateBackgroundVerification records the officer's progress on the
// background track. A Completed outcome moves the owning loan to
// UnderReview; a Failed background check leaves the loan unchanged.
func (h *Handlers) UpdateBackgroundVerification(w http.ResponseWriter, r *http.Request) {
    officerID, ok := officerSelf(w, r)
    if !ok {
        return
    }

    var req models.VerificationUpdateRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    var verification models.BackgroundVerification
    if err := h.db.WithContext(r.Context()).
        Preload("LoanApplication").
        Where("loan_application_id = ?", req.LoanApplicationID).
        First(&verification).Error; err != nil {
        sendError(w, http.StatusNotFound, "Background verification not found.")
        return
    }

    if verification.OfficerID == nil || *verification.OfficerID != officerID {
        sendError(w, http.StatusForbidden, "Verification is not assigned to you.")
        return
    }

    loan := verification.LoanApplication
    if loan == nil {
        sendError(w, http.StatusNotFound, "Loan request not found.")
        return
    }

    nextStatus, changed, err := lifecycle.NextLoanStatus(loan.Status, lifecycle.TrackBackground, req.Status)
    if errors.Is(err, lifecycle.ErrLoanFinalized) {
        sendError(w, http.StatusConflict, "Loan application is already finalized.")
        return
    }

    now := time.Now().UTC()
    verification.LoanApplication = nil
    verification.Notes = req.Notes
    verification.Status = req.Status
    verification.CompletedOn = lifecycle.CompletionTime(req.Status, now)

    tx := h.db.WithContext(r.Context()).Begin()
    defer func() {
        if p := recover(); p != nil {
            tx.Rollback()
        }
    }()

    if err := tx.Save(&verification).Error; err != nil {
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to update background verification")
        return
    }

    if changed {
        loan.Status = nextStatus
        if err := tx.Save(loan).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to update loan status")
            return
        }
        log.Printf("Loan %d moved to %s after background verification %s", loan.ID, nextStatus, req.Status)
    }

    if err := tx.Commit().Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to commit verification update")
        return
    }

    sendJSON(w, http.StatusOK, verification)
}

// UpdateLoanVerification records progress on the loan track. Completed
// approves the owning loan, Failed rejects it.
func (h *Handlers) UpdateLoanVerification(w http.ResponseWriter, r *http.Request) {
    officerID, ok := officerSelf(w, r)
    if !ok {
        return
    }

    var req models.VerificationUpdateRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    var verification models.LoanVerification
    if err := h.db.WithContext(r.Context()).
        Preload("LoanApplication").
        Where("loan_application_id = ?", req.LoanApplicationID).
        First(&verification).Error; err != nil {
        sendError(w, http.StatusNotFound, "Loan verification not found.")
        return
    }

    if verification.OfficerID == nil || *verification.OfficerID != officerID {
        sendError(w, http.StatusForbidden, "Verification is not assigned to you.")
        return
    }

    loan := verification.LoanApplication
    if loan == nil {
        sendError(w, http.StatusNotFound, "Loan request not found.")
        return
    }

    nextStatus, changed, err := lifecycle.NextLoanStatus(loan.Status, lifecycle.TrackLoan, req.Status)
    if errors.Is(err, lifecycle.ErrLoanFinalized) {
        sendError(w, http.StatusConflict, "Loan application is already finalized.")
        return
    }

    now := time.Now().UTC()
    verification.LoanApplication = nil
    verification.VerificationSummary = req.Notes
    verification.Status = req.Status
    verification.CompletedOn = lifecycle.CompletionTime(req.Status, now)

    tx := h.db.WithContext(r.Context()).Begin()
    defer func() {
        if p := recover(); p != nil {
            tx.Rollback()
        }
    }()

    if err := tx.Save(&verification).Error; err != nil {
        tx.Rollback()
        sendError(w, http.StatusInternalServerError, "Failed to update loan verification")
        return
    }

    if changed {
        loan.Status = nextStatus
        if err := tx.Save(loan).Error; err != nil {
            tx.Rollback()
            sendError(w, http.StatusInternalServerError, "Failed to update loan status")
            return
        }
        log.Printf("Loan %d moved to %s after loan verification %s", loan.ID, nextStatus, req.Status)
    }

    if err := tx.Commit().Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to commit verification update")
        return
    }

    sendJSON(w, http.StatusOK, verification)
}

// GetHelpReports is shared by admin, officer, and customer routes; help
// reports are readable across roles without creator filtering.
func (h *Handlers) GetHelpReports(w http.ResponseWriter, r *http.Request) {
    var reports []models.HelpReport
    if err := h.db.WithContext(r.Context()).
        Preload("CreatedBy").
        Order("created_at DESC").
        Find(&reports).Error; err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to fetch help reports")
        return
    }

    sendJSON(w, http.StatusOK, reports)
}
