package handlers

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/google/uuid"
    "github.com/gorilla/mux"
    "gorm.io/gorm"

    "loanms-go/config"
    "loanms-go/models"
)

type Handlers struct {
    db     *gorm.DB
    config *config.Config
}

func NewHandlers(db *gorm.DB, cfg *config.Config) *Handlers {
    return &Handlers{
        db:     db,
        config: cfg,
    }
}

// sendError writes the standard error body {message} with the given status.
func sendError(w http.ResponseWriter, status int, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// pathID extracts a numeric path variable, 0 when absent or malformed.
func pathID(r *http.Request, name string) uint {
    raw := mux.Vars(r)[name]
    id, err := strconv.ParseUint(raw, 10, 32)
    if err != nil {
        return 0
    }
    return uint(id)
}

func isNotFound(err error) bool {
    return errors.Is(err, gorm.ErrRecordNotFound)
}

// generateReference generates a unique loan application reference
func (h *Handlers) generateReference() string {
    return uuid.New().String()
}

// findOfficer loads a user that holds one of the two officer roles.
func (h *Handlers) findOfficer(id uint) (*models.User, error) {
    var officer models.User
    err := h.db.Where("id = ? AND role IN ?", id,
        []models.UserRole{models.RoleLoanOfficer, models.RoleFieldOfficer}).
        First(&officer).Error
    if err != nil {
        return nil, err
    }
    return &officer, nil
}

// findCustomer loads a user holding the customer role.
func (h *Handlers) findCustomer(id uint) (*models.User, error) {
    var customer models.User
    err := h.db.Where("id = ? AND role = ?", id, models.RoleCustomer).
        First(&customer).Error
    if err != nil {
        return nil, err
    }
    return &customer, nil
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
    sendJSON(w, http.StatusOK, map[string]interface{}{
        "status":    "healthy",
        "timestamp": time.Now(),
        "service":   "LoanMS",
        "version":   "1.0.0",
    })
}
