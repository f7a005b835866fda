package postgres

import (
	"context"
	"database/sql"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/google/uuid"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so the same store code
// runs standalone or inside a Locked transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type otpCodeStore struct {
	q queryer
}

type otpCodeRepository struct {
	otpCodeStore
	repository.BaseRepository
}

// NewOtpCodeRepository creates a new PostgreSQL OTP code repository
func NewOtpCodeRepository(db *sql.DB) repository.OtpCodeRepository {
	return &otpCodeRepository{
		otpCodeStore:   otpCodeStore{q: db},
		BaseRepository: repository.NewBaseRepository(db),
	}
}

// Locked serializes issuance per (user, purpose) with a transaction-scoped
// advisory lock. Concurrent issuers for the same pair queue up behind the
// lock, so the rate-limit check, invalidation and insert observe a stable
// view and commit atomically.
func (r *otpCodeRepository) Locked(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, fn func(store repository.OtpCodeStore) error) error {
	return r.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			userID.String()+":"+string(purpose),
		)
		if err != nil {
			return err
		}

		return fn(&otpCodeStore{q: tx})
	})
}

func (s *otpCodeStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2 AND created_at >= $3`

	var count int
	err := s.q.QueryRowContext(ctx, query, userID, purpose, since).Scan(&count)
	return count, err
}

func (s *otpCodeStore) OldestCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (*time.Time, error) {
	query := `
		SELECT created_at
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2 AND created_at >= $3
		ORDER BY created_at ASC
		LIMIT 1`

	var createdAt time.Time
	err := s.q.QueryRowContext(ctx, query, userID, purpose, since).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &createdAt, nil
}

func (s *otpCodeStore) LatestCreatedAt(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose) (*time.Time, error) {
	query := `
		SELECT created_at
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var createdAt time.Time
	err := s.q.QueryRowContext(ctx, query, userID, purpose).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &createdAt, nil
}

func (s *otpCodeStore) InvalidateValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) error {
	query := `
		UPDATE otp_codes
		SET used_at = $3
		WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL AND expires_at > $3`

	_, err := s.q.ExecContext(ctx, query, userID, purpose, now)
	return err
}

func (s *otpCodeStore) Insert(ctx context.Context, code *models.OtpCode) error {
	query := `
		INSERT INTO otp_codes (id, user_id, code, purpose, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}

	_, err := s.q.ExecContext(ctx, query,
		code.ID,
		code.UserID,
		code.Code,
		code.Purpose,
		code.ExpiresAt,
		code.CreatedAt,
	)
	return err
}

// ConsumeValid is a single UPDATE so concurrent submissions of the same code
// cannot both succeed: the row lock taken by the inner SELECT ... FOR UPDATE
// makes the loser see used_at already set.
func (s *otpCodeStore) ConsumeValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, code string, now time.Time) (bool, error) {
	query := `
		UPDATE otp_codes
		SET used_at = $4
		WHERE id = (
			SELECT id FROM otp_codes
			WHERE user_id = $1 AND purpose = $2 AND code = $3
			  AND used_at IS NULL AND expires_at > $4
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE
		)
		RETURNING id`

	var id uuid.UUID
	err := s.q.QueryRowContext(ctx, query, userID, purpose, code, now).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *otpCodeStore) HasValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM otp_codes
			WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL AND expires_at > $3
		)`

	var exists bool
	err := s.q.QueryRowContext(ctx, query, userID, purpose, now).Scan(&exists)
	return exists, err
}

func (s *otpCodeStore) LatestValidExpiry(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (*time.Time, error) {
	query := `
		SELECT expires_at
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`

	var expiresAt time.Time
	err := s.q.QueryRowContext(ctx, query, userID, purpose, now).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expiresAt, nil
}
