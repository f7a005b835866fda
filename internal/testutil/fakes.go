// Package testutil provides in-memory repository fakes for unit tests.
package testutil

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/google/uuid"
)

// FakeUserRepository is an in-memory implementation of repository.UserRepository
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[uuid.UUID]*models.User)}
}

func (f *FakeUserRepository) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *FakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *FakeUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *FakeUserRepository) Update(ctx context.Context, id uuid.UUID, fields models.UpdateUserFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Password != nil {
		u.Password = *fields.Password
	}
	if fields.EmailVerifiedAt != nil {
		u.EmailVerifiedAt = fields.EmailVerifiedAt
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (f *FakeUserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if u.EmailVerifiedAt == nil {
		u.EmailVerifiedAt = &verifiedAt
	}
	return nil
}

// FakeOtpCodeRepository is an in-memory implementation of
// repository.OtpCodeRepository. Locked serializes callers with a plain mutex,
// mirroring the advisory-lock semantics of the postgres implementation.
type FakeOtpCodeRepository struct {
	mu    sync.Mutex
	store fakeOtpStore
}

type fakeOtpStore struct {
	codes []*models.OtpCode
}

func NewFakeOtpCodeRepository() *FakeOtpCodeRepository {
	return &FakeOtpCodeRepository{}
}

func (f *FakeOtpCodeRepository) Locked(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, fn func(store repository.OtpCodeStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(&f.store)
}

// Codes returns a snapshot of every stored code, oldest first.
func (f *FakeOtpCodeRepository) Codes() []models.OtpCode {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.OtpCode, 0, len(f.store.codes))
	for _, c := range f.store.codes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *FakeOtpCodeRepository) CountCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.CountCreatedSince(ctx, userID, purpose, since)
}

func (f *FakeOtpCodeRepository) OldestCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.OldestCreatedSince(ctx, userID, purpose, since)
}

func (f *FakeOtpCodeRepository) LatestCreatedAt(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.LatestCreatedAt(ctx, userID, purpose)
}

func (f *FakeOtpCodeRepository) InvalidateValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.InvalidateValid(ctx, userID, purpose, now)
}

func (f *FakeOtpCodeRepository) Insert(ctx context.Context, code *models.OtpCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Insert(ctx, code)
}

func (f *FakeOtpCodeRepository) ConsumeValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, code string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.ConsumeValid(ctx, userID, purpose, code, now)
}

func (f *FakeOtpCodeRepository) HasValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.HasValid(ctx, userID, purpose, now)
}

func (f *FakeOtpCodeRepository) LatestValidExpiry(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.LatestValidExpiry(ctx, userID, purpose, now)
}

func (s *fakeOtpStore) match(userID uuid.UUID, purpose models.OtpPurpose) []*models.OtpCode {
	var out []*models.OtpCode
	for _, c := range s.codes {
		if c.UserID == userID && c.Purpose == purpose {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *fakeOtpStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (int, error) {
	count := 0
	for _, c := range s.match(userID, purpose) {
		if !c.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeOtpStore) OldestCreatedSince(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, since time.Time) (*time.Time, error) {
	for _, c := range s.match(userID, purpose) {
		if !c.CreatedAt.Before(since) {
			t := c.CreatedAt
			return &t, nil
		}
	}
	return nil, nil
}

func (s *fakeOtpStore) LatestCreatedAt(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose) (*time.Time, error) {
	codes := s.match(userID, purpose)
	if len(codes) == 0 {
		return nil, nil
	}
	t := codes[len(codes)-1].CreatedAt
	return &t, nil
}

func (s *fakeOtpStore) InvalidateValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) error {
	for _, c := range s.match(userID, purpose) {
		if c.IsValid(now) {
			used := now
			c.UsedAt = &used
		}
	}
	return nil
}

func (s *fakeOtpStore) Insert(ctx context.Context, code *models.OtpCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	clone := *code
	s.codes = append(s.codes, &clone)
	return nil
}

func (s *fakeOtpStore) ConsumeValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, code string, now time.Time) (bool, error) {
	matches := s.match(userID, purpose)
	for i := len(matches) - 1; i >= 0; i-- {
		c := matches[i]
		if c.Code == code && c.IsValid(now) {
			used := now
			c.UsedAt = &used
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeOtpStore) HasValid(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (bool, error) {
	for _, c := range s.match(userID, purpose) {
		if c.IsValid(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeOtpStore) LatestValidExpiry(ctx context.Context, userID uuid.UUID, purpose models.OtpPurpose, now time.Time) (*time.Time, error) {
	matches := s.match(userID, purpose)
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].IsValid(now) {
			t := matches[i].ExpiresAt
			return &t, nil
		}
	}
	return nil, nil
}

// FakeAuthLogRepository is an in-memory implementation of repository.AuthLogRepository
type FakeAuthLogRepository struct {
	mu      sync.Mutex
	entries []models.AuthLog
}

func NewFakeAuthLogRepository() *FakeAuthLogRepository {
	return &FakeAuthLogRepository{}
}

func (f *FakeAuthLogRepository) Create(ctx context.Context, entry *models.AuthLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *FakeAuthLogRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuthLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.AuthLog
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID != nil && *f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *FakeAuthLogRepository) GetByEmail(ctx context.Context, email string, limit int) ([]models.AuthLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.AuthLog
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].Email == email {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *FakeAuthLogRepository) CountByAction(ctx context.Context, userID uuid.UUID, since time.Time) (map[models.AuthAction]repository.ActionCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[models.AuthAction]repository.ActionCount)
	for _, e := range f.entries {
		if e.UserID == nil || *e.UserID != userID || e.CreatedAt.Before(since) {
			continue
		}
		c := counts[e.Action]
		if e.Success {
			c.Succeeded++
		} else {
			c.Failed++
		}
		counts[e.Action] = c
	}
	return counts, nil
}

// Entries returns a snapshot of all recorded entries, oldest first.
func (f *FakeAuthLogRepository) Entries() []models.AuthLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AuthLog(nil), f.entries...)
}

// ByAction returns recorded entries with the given action, oldest first.
func (f *FakeAuthLogRepository) ByAction(action models.AuthAction) []models.AuthLog {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.AuthLog
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// FakeFavoriteRepository is an in-memory implementation of repository.FavoriteRepository
type FakeFavoriteRepository struct {
	mu        sync.Mutex
	favorites map[uuid.UUID]*models.Favorite
}

func NewFakeFavoriteRepository() *FakeFavoriteRepository {
	return &FakeFavoriteRepository{favorites: make(map[uuid.UUID]*models.Favorite)}
}

func (f *FakeFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	favorite.UpdatedAt = favorite.CreatedAt

	clone := *favorite
	f.favorites[favorite.ID] = &clone
	return nil
}

func (f *FakeFavoriteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fav, ok := f.favorites[id]
	if !ok {
		return nil, repository.ErrFavoriteNotFound
	}
	clone := *fav
	return &clone, nil
}

func (f *FakeFavoriteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeFavoriteRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fav, ok := f.favorites[id]
	if !ok {
		return repository.ErrFavoriteNotFound
	}
	fav.Notes = notes
	fav.UpdatedAt = time.Now()
	return nil
}

func (f *FakeFavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.favorites[id]; !ok {
		return repository.ErrFavoriteNotFound
	}
	delete(f.favorites, id)
	return nil
}

func (f *FakeFavoriteRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, fav := range f.favorites {
		if fav.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (f *FakeFavoriteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	deleted := 0
	for id, fav := range f.favorites {
		if fav.CreatedAt.Before(cutoff) {
			delete(f.favorites, id)
			deleted++
		}
	}
	return deleted, nil
}

// FakeSettingRepository is an in-memory implementation of repository.SettingRepository
type FakeSettingRepository struct {
	mu     sync.Mutex
	values map[string]string
}

func NewFakeSettingRepository() *FakeSettingRepository {
	return &FakeSettingRepository{values: make(map[string]string)}
}

func (f *FakeSettingRepository) GetValue(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return v, nil
}

func (f *FakeSettingRepository) SetValue(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *FakeSettingRepository) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	v, err := f.GetValue(ctx, key)
	if err != nil {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, nil
	}
	return b, nil
}

func (f *FakeSettingRepository) GetInt(ctx context.Context, key string, fallback int) (int, error) {
	v, err := f.GetValue(ctx, key)
	if err != nil {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback, nil
	}
	return i, nil
}
