package lifecycle

import (
    "errors"
    "testing"
    "time"

    "loanms-go/models"
)

func TestNextLoanStatus(t *testing.T) {
    tests := []struct {
        name        string
        current     models.LoanStatus
        track       Track
        outcome     models.VerificationStatus
        want        models.LoanStatus
        wantChanged bool
        wantErr     error
    }{
        {
            name:    "background completed moves submitted to under review",
            current: models.LoanSubmitted, track: TrackBackground, outcome: models.VerificationCompleted,
            want: models.LoanUnderReview, wantChanged: true,
        },
        {
            name:    "background completed moves draft to under review",
            current: models.LoanDraft, track: TrackBackground, outcome: models.VerificationCompleted,
            want: models.LoanUnderReview, wantChanged: true,
        },
        {
            name:    "background failed leaves loan unchanged",
            current: models.LoanSubmitted, track: TrackBackground, outcome: models.VerificationFailed,
            want: models.LoanSubmitted, wantChanged: false,
        },
        {
            name:    "background in progress leaves loan unchanged",
            current: models.LoanSubmitted, track: TrackBackground, outcome: models.VerificationInProgress,
            want: models.LoanSubmitted, wantChanged: false,
        },
        {
            name:    "loan verification completed approves under review loan",
            current: models.LoanUnderReview, track: TrackLoan, outcome: models.VerificationCompleted,
            want: models.LoanApproved, wantChanged: true,
        },
        {
            name:    "loan verification completed approves submitted loan",
            current: models.LoanSubmitted, track: TrackLoan, outcome: models.VerificationCompleted,
            want: models.LoanApproved, wantChanged: true,
        },
        {
            name:    "loan verification failed rejects under review loan",
            current: models.LoanUnderReview, track: TrackLoan, outcome: models.VerificationFailed,
            want: models.LoanRejected, wantChanged: true,
        },
        {
            name:    "loan verification failed rejects submitted loan",
            current: models.LoanSubmitted, track: TrackLoan, outcome: models.VerificationFailed,
            want: models.LoanRejected, wantChanged: true,
        },
        {
            name:    "loan verification assigned leaves loan unchanged",
            current: models.LoanUnderReview, track: TrackLoan, outcome: models.VerificationAssigned,
            want: models.LoanUnderReview, wantChanged: false,
        },
        {
            name:    "approved loan cannot be re-evaluated",
            current: models.LoanApproved, track: TrackLoan, outcome: models.VerificationFailed,
            want: models.LoanApproved, wantChanged: false, wantErr: ErrLoanFinalized,
        },
        {
            name:    "rejected loan cannot be re-evaluated",
            current: models.LoanRejected, track: TrackLoan, outcome: models.VerificationCompleted,
            want: models.LoanRejected, wantChanged: false, wantErr: ErrLoanFinalized,
        },
        {
            name:    "approved loan blocks background completion",
            current: models.LoanApproved, track: TrackBackground, outcome: models.VerificationCompleted,
            want: models.LoanApproved, wantChanged: false, wantErr: ErrLoanFinalized,
        },
        {
            name:    "non-transition outcome on approved loan is a no-op",
            current: models.LoanApproved, track: TrackBackground, outcome: models.VerificationInProgress,
            want: models.LoanApproved, wantChanged: false,
        },
        {
            name:    "background completed on under review loan does not change it",
            current: models.LoanUnderReview, track: TrackBackground, outcome: models.VerificationCompleted,
            want: models.LoanUnderReview, wantChanged: false,
        },
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, changed, err := NextLoanStatus(tt.current, tt.track, tt.outcome)
            if !errors.Is(err, tt.wantErr) {
                t.Fatalf("err = %v, want %v", err, tt.wantErr)
            }
            if got != tt.want {
                t.Fatalf("status = %s, want %s", got, tt.want)
            }
            if changed != tt.wantChanged {
                t.Fatalf("changed = %v, want %v", changed, tt.wantChanged)
            }
        })
    }
}

func TestCompletionTime(t *testing.T) {
    now := time.Now().UTC()

    for _, status := range []models.VerificationStatus{
        models.VerificationCompleted,
        models.VerificationFailed,
    } {
        if got := CompletionTime(status, now); got == nil || !got.Equal(now) {
            t.Fatalf("CompletionTime(%s) = %v, want %v", status, got, now)
        }
    }

    for _, status := range []models.VerificationStatus{
        models.VerificationPending,
        models.VerificationAssigned,
        models.VerificationInProgress,
    } {
        if got := CompletionTime(status, now); got != nil {
            t.Fatalf("CompletionTime(%s) = %v, want nil", status, got)
        }
    }
}
