package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "loanms-go/models"
    "loanms-go/utils"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
    var req models.RegisterRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    email := strings.ToLower(utils.SanitizeString(req.Email))

    // Email uniqueness is case-insensitive; addresses are stored lower-cased.
    var existingUser models.User
    if err := h.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
        sendError(w, http.StatusConflict, "Email is already registered.")
        return
    }

    hashedPassword, err := utils.HashPassword(req.Password)
    if err != nil {
        sendError(w, http.StatusInternalServerError, "Failed to hash password")
        return
    }

    // Customers may act immediately; officer and admin accounts wait for
    // an admin to approve them.
    approval := models.ApprovalPending
    if req.Role == models.RoleCustomer {
        approval = models.ApprovalApproved
    }

    user := models.User{
        FullName:       utils.SanitizeString(req.FullName),
        Email:          email,
        PhoneNumber:    req.PhoneNumber,
        Password:       hashedPassword,
        Role:           req.Role,
        ApprovalStatus: approval,
        IsActive:       true,
    }

    if err := h.db.Create(&user).Error; err != nil {
        log.Printf("Failed to create user %s: %v", email, err)
        sendError(w, http.StatusInternalServerError, "Failed to create user")
        return
    }

    log.Printf("User registered: ID=%d, Email=%s, Role=%s, Approval=%s", user.ID, user.Email, user.Role, user.ApprovalStatus)

    sendJSON(w, http.StatusCreated, user.Summary())
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
    var req models.LoginRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, utils.FormatValidationError(err))
        return
    }

    var user models.User
    if err := h.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
        if isNotFound(err) {
            sendError(w, http.StatusUnauthorized, "Invalid credentials.")
            return
        }
        log.Printf("Database error during login for %s: %v", req.Email, err)
        sendError(w, http.StatusInternalServerError, "Database error")
        return
    }

    if !utils.CheckPasswordHash(req.Password, user.Password) {
        log.Printf("Invalid password for user: %s", req.Email)
        sendError(w, http.StatusUnauthorized, "Invalid credentials.")
        return
    }

    if !user.IsActive {
        log.Printf("Login attempt for inactive user: %s", req.Email)
        sendError(w, http.StatusForbidden, "Account is deactivated")
        return
    }

    token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
    if err != nil {
        log.Printf("Failed to generate token for user %s: %v", req.Email, err)
        sendError(w, http.StatusInternalServerError, "Failed to generate token")
        return
    }

    log.Printf("User login: ID=%d, Email=%s, Role=%s", user.ID, user.Email, user.Role)

    sendJSON(w, http.StatusOK, models.LoginResponse{
        Token: token,
        User:  user.Summary(),
    })
}
