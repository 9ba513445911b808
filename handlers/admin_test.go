package handlers

import (
    "fmt"
    "net/http"
    "testing"

    "github.com/stretchr/testify/require"

    "loanms-go/models"
)

func createLoan(t *testing.T, h *Handlers, customer *models.User) *models.LoanApplication {
    t.Helper()
    loan := models.LoanApplication{
        Reference:    h.generateReference(),
        CustomerID:   customer.ID,
        Amount:       5000,
        TenureMonths: 12,
        LoanType:     "Personal",
        Status:       models.LoanSubmitted,
    }
    require.NoError(t, h.db.Create(&loan).Error)
    return &loan
}

func TestAdminRoutesRejectOtherRoles(t *testing.T) {
    _, router, db := newTestEnv(t)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)

    rec := doJSON(t, router, http.MethodGet, "/admin/customers", tokenFor(t, customer), nil)
    require.Equal(t, http.StatusForbidden, rec.Code)

    rec = doJSON(t, router, http.MethodGet, "/admin/customers", "", nil)
    require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetCustomerApproval(t *testing.T) {
    _, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalPending)

    approve := true
    rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/admin/customers/%d/approval", customer.ID),
        tokenFor(t, admin), models.ApprovalRequest{Approve: &approve})
    require.Equal(t, http.StatusOK, rec.Code)

    var updated models.User
    decodeBody(t, rec, &updated)
    require.Equal(t, models.ApprovalApproved, updated.ApprovalStatus)

    reject := false
    rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/admin/customers/%d/approval", customer.ID),
        tokenFor(t, admin), models.ApprovalRequest{Approve: &reject})
    require.Equal(t, http.StatusOK, rec.Code)
    decodeBody(t, rec, &updated)
    require.Equal(t, models.ApprovalRejected, updated.ApprovalStatus)
}

func TestSetApprovalUnknownUser(t *testing.T) {
    _, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)

    approve := true
    rec := doJSON(t, router, http.MethodPut, "/admin/customers/9999/approval",
        tokenFor(t, admin), models.ApprovalRequest{Approve: &approve})
    require.Equal(t, http.StatusNotFound, rec.Code)

    rec = doJSON(t, router, http.MethodPut, "/admin/officers/9999/approval",
        tokenFor(t, admin), models.ApprovalRequest{Approve: &approve})
    require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignBackgroundVerificationCreatesRecord(t *testing.T) {
    h, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    officer := createUser(t, db, models.RoleFieldOfficer, models.ApprovalPending)
    loan := createLoan(t, h, customer)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{
            LoanApplicationID: loan.ID,
            OfficerID:         officer.ID,
        })
    require.Equal(t, http.StatusOK, rec.Code)

    var updated models.LoanApplication
    decodeBody(t, rec, &updated)
    require.NotNil(t, updated.AssignedOfficerID)
    require.Equal(t, officer.ID, *updated.AssignedOfficerID)
    require.NotNil(t, updated.BackgroundVerification)
    require.Equal(t, models.VerificationAssigned, updated.BackgroundVerification.Status)
    require.Equal(t, "Background verification assigned.", updated.BackgroundVerification.Notes)
}

func TestReassignmentResetsVerificationProgress(t *testing.T) {
    h, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    first := createUser(t, db, models.RoleFieldOfficer, models.ApprovalApproved)
    second := createUser(t, db, models.RoleLoanOfficer, models.ApprovalApproved)
    loan := createLoan(t, h, customer)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{LoanApplicationID: loan.ID, OfficerID: first.ID})
    require.Equal(t, http.StatusOK, rec.Code)

    // First officer makes progress.
    require.NoError(t, db.Model(&models.BackgroundVerification{}).
        Where("loan_application_id = ?", loan.ID).
        Updates(map[string]interface{}{"status": models.VerificationInProgress, "notes": "halfway there"}).Error)

    rec = doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{LoanApplicationID: loan.ID, OfficerID: second.ID})
    require.Equal(t, http.StatusOK, rec.Code)

    var verification models.BackgroundVerification
    require.NoError(t, db.Where("loan_application_id = ?", loan.ID).First(&verification).Error)
    require.Equal(t, models.VerificationAssigned, verification.Status)
    require.NotNil(t, verification.OfficerID)
    require.Equal(t, second.ID, *verification.OfficerID)
}

func TestAssignRejectsNonOfficer(t *testing.T) {
    h, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    loan := createLoan(t, h, customer)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/verification/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{
            LoanApplicationID: loan.ID,
            OfficerID:         customer.ID,
        })
    require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignUnknownLoan(t *testing.T) {
    _, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    officer := createUser(t, db, models.RoleFieldOfficer, models.ApprovalApproved)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{
            LoanApplicationID: 9999,
            OfficerID:         officer.ID,
        })
    require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoanVerificationAssignmentOverwritesLoanOfficer(t *testing.T) {
    h, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    background := createUser(t, db, models.RoleFieldOfficer, models.ApprovalApproved)
    loanOfficer := createUser(t, db, models.RoleLoanOfficer, models.ApprovalApproved)
    loan := createLoan(t, h, customer)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{LoanApplicationID: loan.ID, OfficerID: background.ID})
    require.Equal(t, http.StatusOK, rec.Code)

    rec = doJSON(t, router, http.MethodPost, "/admin/loan-requests/verification/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{LoanApplicationID: loan.ID, OfficerID: loanOfficer.ID})
    require.Equal(t, http.StatusOK, rec.Code)

    // The loan-level assignment is shared between tracks: the later call
    // wins there, while each sub-record keeps its own officer.
    var reloaded models.LoanApplication
    require.NoError(t, db.Preload("BackgroundVerification").Preload("LoanVerification").First(&reloaded, loan.ID).Error)
    require.Equal(t, loanOfficer.ID, *reloaded.AssignedOfficerID)
    require.Equal(t, background.ID, *reloaded.BackgroundVerification.OfficerID)
    require.Equal(t, loanOfficer.ID, *reloaded.LoanVerification.OfficerID)
}

func TestDeleteVerificationRecords(t *testing.T) {
    h, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    customer := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    officer := createUser(t, db, models.RoleFieldOfficer, models.ApprovalApproved)
    loan := createLoan(t, h, customer)

    rec := doJSON(t, router, http.MethodPost, "/admin/loan-requests/background/assign",
        tokenFor(t, admin), models.AssignOfficerRequest{LoanApplicationID: loan.ID, OfficerID: officer.ID})
    require.Equal(t, http.StatusOK, rec.Code)

    var verification models.BackgroundVerification
    require.NoError(t, db.Where("loan_application_id = ?", loan.ID).First(&verification).Error)

    rec = doJSON(t, router, http.MethodDelete,
        fmt.Sprintf("/admin/background-verifications/%d", verification.ID), tokenFor(t, admin), nil)
    require.Equal(t, http.StatusNoContent, rec.Code)

    rec = doJSON(t, router, http.MethodDelete,
        fmt.Sprintf("/admin/background-verifications/%d", verification.ID), tokenFor(t, admin), nil)
    require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackQuestionCRUD(t *testing.T) {
    _, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    token := tokenFor(t, admin)

    rec := doJSON(t, router, http.MethodPost, "/admin/feedback/questions", token,
        models.FeedbackQuestionRequest{Question: "How did we do?"})
    require.Equal(t, http.StatusCreated, rec.Code)

    var question models.FeedbackQuestion
    decodeBody(t, rec, &question)
    require.True(t, question.IsActive)

    inactive := false
    rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/admin/feedback/questions/%d", question.ID), token,
        models.FeedbackQuestionRequest{Question: "How did we do?", IsActive: &inactive})
    require.Equal(t, http.StatusOK, rec.Code)
    decodeBody(t, rec, &question)
    require.False(t, question.IsActive)

    rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/feedback/questions/%d", question.ID), token, nil)
    require.Equal(t, http.StatusNoContent, rec.Code)

    rec = doJSON(t, router, http.MethodGet, "/admin/feedback/questions", token, nil)
    require.Equal(t, http.StatusOK, rec.Code)
    var questions []models.FeedbackQuestion
    decodeBody(t, rec, &questions)
    require.Empty(t, questions)
}

func TestCustomerListFilteredByApproval(t *testing.T) {
    _, router, db := newTestEnv(t)
    admin := createUser(t, db, models.RoleAdmin, models.ApprovalApproved)
    createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    createUser(t, db, models.RoleCustomer, models.ApprovalPending)
    createUser(t, db, models.RoleFieldOfficer, models.ApprovalPending)

    rec := doJSON(t, router, http.MethodGet, "/admin/customers?status=Pending", tokenFor(t, admin), nil)
    require.Equal(t, http.StatusOK, rec.Code)

    var customers []models.User
    decodeBody(t, rec, &customers)
    require.Len(t, customers, 1)
    require.Equal(t, models.ApprovalPending, customers[0].ApprovalStatus)
    require.Equal(t, models.RoleCustomer, customers[0].Role)
}
