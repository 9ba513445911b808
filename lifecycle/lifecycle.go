package lifecycle

import (
    "errors"
    "time"

    "loanms-go/models"
)

// Track identifies which of the two verification processes produced an
// outcome. Background verification can only move a loan into review; the
// loan verification outcome decides approval or rejection.
type Track string

const (
    TrackBackground Track = "background"
    TrackLoan       Track = "loan"
)

// ErrLoanFinalized is returned when an outcome would re-evaluate a loan
// that is already Approved or Rejected.
var ErrLoanFinalized = errors.New("loan application is already finalized")

// IsTerminal reports whether no further status transitions are allowed.
func IsTerminal(status models.LoanStatus) bool {
    return status == models.LoanApproved || status == models.LoanRejected
}

// NextLoanStatus maps a verification outcome onto the owning loan's status.
// It returns the new status and whether the loan changed at all.
//
// Rules:
//   - background Completed moves any non-terminal loan to UnderReview
//   - loan verification Completed moves any non-terminal loan to Approved
//   - loan verification Failed moves any non-terminal loan to Rejected
//   - every other outcome leaves the loan untouched; in particular a
//     Failed background check does not reject the loan
func NextLoanStatus(current models.LoanStatus, track Track, outcome models.VerificationStatus) (models.LoanStatus, bool, error) {
    switch {
    case track == TrackBackground && outcome == models.VerificationCompleted:
        if IsTerminal(current) {
            return current, false, ErrLoanFinalized
        }
        return models.LoanUnderReview, current != models.LoanUnderReview, nil
    case track == TrackLoan && outcome == models.VerificationCompleted:
        if IsTerminal(current) {
            return current, false, ErrLoanFinalized
        }
        return models.LoanApproved, true, nil
    case track == TrackLoan && outcome == models.VerificationFailed:
        if IsTerminal(current) {
            return current, false, ErrLoanFinalized
        }
        return models.LoanRejected, true, nil
    default:
        return current, false, nil
    }
}

// CompletionTime stamps the verification completion timestamp. It is set
// exactly when the status is Completed or Failed and cleared otherwise,
// including when a verification reverts from Completed back to InProgress.
func CompletionTime(status models.VerificationStatus, now time.Time) *time.Time {
    if status == models.VerificationCompleted || status == models.VerificationFailed {
        return &now
    }
    return nil
}
