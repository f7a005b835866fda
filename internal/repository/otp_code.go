package repository

import (
	"context"
	"time"
	"wordvault/internal/models"

	"github.com/google/uuid"
)

// OtpCodeStore is the set of per-(user, purpose) operations on issued codes.
// Implementations scope every method to exactly one user and purpose.
type OtpCodeStore interface {
	// CountCreatedSince counts codes created at or after the given instant,
	// used or not. Rate limiting counts issuance attempts, not live codes.
	CountCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (int, error)

	// OldestCreatedSince returns the creation time of the oldest code in the
	// window, or nil when the window is empty.
	OldestCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (*time.Time, error)

	// LatestCreatedAt returns the creation time of the most recent code, or
	// nil when none has ever been issued.
	LatestCreatedAt(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose) (*time.Time, error)

	// InvalidateValid marks every currently-valid code as used.
	InvalidateValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) error

	// Insert persists a newly generated code.
	Insert(ctx context.Context, code *models.OtpCode) error

	// ConsumeValid atomically finds a currently-valid code matching the
	// submitted string and marks it used. Returns false when no such code
	// exists; expired, used and unknown codes are indistinguishable.
	ConsumeValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, code string, now time.Time) (bool, error)

	// HasValid reports whether any currently-valid code exists.
	HasValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (bool, error)

	// LatestValidExpiry returns the expiry of the most recent valid code, or
	// nil when none is outstanding.
	LatestValidExpiry(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (*time.Time, error)
}

// OtpCodeRepository is the persistence contract for the OTP ledger. Locked
// serializes concurrent issuance for the same (user, purpose) pair so the
// check-invalidate-insert sequence is atomic: without it a race could leave
// two valid codes outstanding or admit more requests than the window allows.
type OtpCodeRepository interface {
	OtpCodeStore

	// Locked runs fn within a single transaction holding an exclusive lock
	// on the (user, purpose) pair. The store passed to fn operates inside
	// that transaction; returning an error rolls everything back.
	Locked(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, fn func(store OtpCodeStore) error) error
}
