package handlers

import (
    "net/http"
    "testing"

    "github.com/stretchr/testify/require"

    "loanms-go/models"
)

func TestRegisterCustomerIsAutoApproved(t *testing.T) {
    _, router, _ := newTestEnv(t)

    rec := doJSON(t, router, http.MethodPost, "/auth/register", "", models.RegisterRequest{
        FullName:    "Jane Customer",
        Email:       "jane@example.com",
        Password:    "Secret@123",
        PhoneNumber: "5550001234",
        Role:        models.RoleCustomer,
    })
    require.Equal(t, http.StatusCreated, rec.Code)

    var summary models.UserSummary
    decodeBody(t, rec, &summary)
    require.Equal(t, models.RoleCustomer, summary.Role)
    require.Equal(t, models.ApprovalApproved, summary.ApprovalStatus)
}

func TestRegisterOfficerStartsPending(t *testing.T) {
    _, router, _ := newTestEnv(t)

    rec := doJSON(t, router, http.MethodPost, "/auth/register", "", models.RegisterRequest{
        FullName:    "Olu Officer",
        Email:       "olu@example.com",
        Password:    "Secret@123",
        PhoneNumber: "5550001234",
        Role:        models.RoleFieldOfficer,
    })
    require.Equal(t, http.StatusCreated, rec.Code)

    var summary models.UserSummary
    decodeBody(t, rec, &summary)
    require.Equal(t, models.ApprovalPending, summary.ApprovalStatus)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
    _, router, _ := newTestEnv(t)

    first := models.RegisterRequest{
        FullName:    "Jane Customer",
        Email:       "Jane@Example.com",
        Password:    "Secret@123",
        PhoneNumber: "5550001234",
        Role:        models.RoleCustomer,
    }
    rec := doJSON(t, router, http.MethodPost, "/auth/register", "", first)
    require.Equal(t, http.StatusCreated, rec.Code)

    // Same address with different casing must collide.
    first.Email = "jane@example.COM"
    rec = doJSON(t, router, http.MethodPost, "/auth/register", "", first)
    require.Equal(t, http.StatusConflict, rec.Code)

    var body map[string]string
    decodeBody(t, rec, &body)
    require.NotEmpty(t, body["message"])
}

func TestLoginReturnsTokenAndSummary(t *testing.T) {
    _, router, db := newTestEnv(t)
    user := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)

    rec := doJSON(t, router, http.MethodPost, "/auth/login", "", models.LoginRequest{
        Email:    user.Email,
        Password: "Secret@123",
    })
    require.Equal(t, http.StatusOK, rec.Code)

    var resp models.LoginResponse
    decodeBody(t, rec, &resp)
    require.NotEmpty(t, resp.Token)
    require.Equal(t, user.ID, resp.User.ID)
    require.Equal(t, models.RoleCustomer, resp.User.Role)
    require.Equal(t, models.ApprovalApproved, resp.User.ApprovalStatus)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
    _, router, db := newTestEnv(t)
    user := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)

    rec := doJSON(t, router, http.MethodPost, "/auth/login", "", models.LoginRequest{
        Email:    user.Email,
        Password: "wrong-password",
    })
    require.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = doJSON(t, router, http.MethodPost, "/auth/login", "", models.LoginRequest{
        Email:    "nobody@example.com",
        Password: "Secret@123",
    })
    require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
    _, router, db := newTestEnv(t)
    user := createUser(t, db, models.RoleCustomer, models.ApprovalApproved)
    require.NoError(t, db.Model(user).Update("is_active", false).Error)

    rec := doJSON(t, router, http.MethodPost, "/auth/login", "", models.LoginRequest{
        Email:    user.Email,
        Password: "Secret@123",
    })
    require.Equal(t, http.StatusForbidden, rec.Code)
}
