package cleanup

import (
	"context"
	"testing"
	"time"

	"wordvault/internal/models"
	"wordvault/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedFavorite(t *testing.T, repo *testutil.FakeFavoriteRepository, age time.Duration, now time.Time) uuid.UUID {
	t.Helper()

	fav := &models.Favorite{
		UserID:    uuid.New(),
		Word:      "ephemeral",
		CreatedAt: now.Add(-age),
	}
	require.NoError(t, repo.Create(context.Background(), fav))
	return fav.ID
}

func newTestJob(t *testing.T) (*FavoritesJob, *testutil.FakeFavoriteRepository, *testutil.FakeSettingRepository, time.Time) {
	t.Helper()

	favorites := testutil.NewFakeFavoriteRepository()
	settings := testutil.NewFakeSettingRepository()
	job := NewFavoritesJob(favorites, settings, "0 3 * * *")

	now := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }
	return job, favorites, settings, now
}

func TestRunDeletesOnlyExpiredFavorites(t *testing.T) {
	job, favorites, _, now := newTestJob(t)
	ctx := context.Background()

	old := seedFavorite(t, favorites, 31*24*time.Hour, now)
	fresh := seedFavorite(t, favorites, 29*24*time.Hour, now)

	require.NoError(t, job.Run(ctx))

	_, err := favorites.GetByID(ctx, old)
	require.Error(t, err)
	_, err = favorites.GetByID(ctx, fresh)
	require.NoError(t, err)
}

func TestRunHonorsConfiguredRetention(t *testing.T) {
	job, favorites, settings, now := newTestJob(t)
	ctx := context.Background()

	require.NoError(t, settings.SetValue(ctx, models.SettingCleanupDays, "0"))
	require.NoError(t, settings.SetValue(ctx, models.SettingCleanupHours, "1"))
	require.NoError(t, settings.SetValue(ctx, models.SettingCleanupMinutes, "30"))

	old := seedFavorite(t, favorites, 2*time.Hour, now)
	fresh := seedFavorite(t, favorites, time.Hour, now)

	require.NoError(t, job.Run(ctx))

	_, err := favorites.GetByID(ctx, old)
	require.Error(t, err)
	_, err = favorites.GetByID(ctx, fresh)
	require.NoError(t, err)
}

func TestRunSkipsWhenDisabled(t *testing.T) {
	job, favorites, settings, now := newTestJob(t)
	ctx := context.Background()

	require.NoError(t, settings.SetValue(ctx, models.SettingCleanupEnabled, "false"))
	old := seedFavorite(t, favorites, 365*24*time.Hour, now)

	require.NoError(t, job.Run(ctx))

	_, err := favorites.GetByID(ctx, old)
	require.NoError(t, err)
}

func TestPolicyDefaults(t *testing.T) {
	job, _, _, _ := newTestJob(t)

	policy, err := job.Policy(context.Background())
	require.NoError(t, err)
	require.True(t, policy.Enabled)
	require.Equal(t, 30, policy.Days)
	require.Equal(t, 30*24*time.Hour, policy.Retention())
}

func TestManagerRunJobByName(t *testing.T) {
	job, favorites, _, now := newTestJob(t)
	old := seedFavorite(t, favorites, 31*24*time.Hour, now)

	m := NewManager()
	m.Register(job)

	require.NoError(t, m.RunJob(context.Background(), "favorites-cleanup"))
	_, err := favorites.GetByID(context.Background(), old)
	require.Error(t, err)

	require.Error(t, m.RunJob(context.Background(), "no-such-job"))
}
