// Package cleanup runs scheduled maintenance jobs.
package cleanup

import (
	"context"
	"fmt"
	"log"
	"time"

	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled maintenance work.
type Job interface {
	// Name returns the unique name of the job
	Name() string
	// Run executes the job
	Run(ctx context.Context) error
	// Schedule returns the job's cron schedule
	Schedule() string
}

// Manager schedules and executes registered jobs.
type Manager struct {
	jobs []Job
	cron *cron.Cron
}

// NewManager creates a new job manager
func NewManager() *Manager {
	// Standard five-field cron expressions, no seconds
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	return &Manager{
		jobs: make([]Job, 0),
		cron: c,
	}
}

// Register adds a job to the manager
func (m *Manager) Register(j Job) {
	m.jobs = append(m.jobs, j)
}

// RunJob executes a specific job by name, outside its schedule
func (m *Manager) RunJob(ctx context.Context, name string) error {
	for _, j := range m.jobs {
		if j.Name() == name {
			return j.Run(ctx)
		}
	}
	return fmt.Errorf("job %s not found", name)
}

// StartScheduler starts all registered jobs on their schedules and blocks
// until the context is cancelled.
func (m *Manager) StartScheduler(ctx context.Context) error {
	for _, j := range m.jobs {
		if j.Schedule() == "" {
			return fmt.Errorf("job %s has no schedule configured", j.Name())
		}

		job := j
		_, err := m.cron.AddFunc(job.Schedule(), func() {
			log.Printf("Running scheduled execution of job %s", job.Name())
			if err := job.Run(ctx); err != nil {
				log.Printf("Error running job %s: %v", job.Name(), err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
		}

		log.Printf("Scheduled job %s with schedule %s", job.Name(), job.Schedule())
	}

	m.cron.Start()
	log.Println("Cleanup scheduler started")

	<-ctx.Done()
	log.Println("Stopping cleanup scheduler...")
	m.cron.Stop()

	return nil
}

// FavoritesJob deletes favorites older than the retention configured in the
// settings store. The policy is read on every run so settings changes take
// effect without a restart.
type FavoritesJob struct {
	favoriteRepo repository.FavoriteRepository
	settingRepo  repository.SettingRepository
	schedule     string
	now          func() time.Time
}

// NewFavoritesJob creates the favorites retention job
func NewFavoritesJob(favoriteRepo repository.FavoriteRepository, settingRepo repository.SettingRepository, schedule string) *FavoritesJob {
	return &FavoritesJob{
		favoriteRepo: favoriteRepo,
		settingRepo:  settingRepo,
		schedule:     schedule,
		now:          time.Now,
	}
}

func (j *FavoritesJob) Name() string     { return "favorites-cleanup" }
func (j *FavoritesJob) Schedule() string { return j.schedule }

// Policy reads the current retention settings.
func (j *FavoritesJob) Policy(ctx context.Context) (models.CleanupSettings, error) {
	var policy models.CleanupSettings
	var err error

	if policy.Enabled, err = j.settingRepo.GetBool(ctx, models.SettingCleanupEnabled, true); err != nil {
		return policy, err
	}
	if policy.Days, err = j.settingRepo.GetInt(ctx, models.SettingCleanupDays, 30); err != nil {
		return policy, err
	}
	if policy.Hours, err = j.settingRepo.GetInt(ctx, models.SettingCleanupHours, 0); err != nil {
		return policy, err
	}
	if policy.Minutes, err = j.settingRepo.GetInt(ctx, models.SettingCleanupMinutes, 0); err != nil {
		return policy, err
	}
	return policy, nil
}

// Run deletes favorites older than the configured retention.
func (j *FavoritesJob) Run(ctx context.Context) error {
	policy, err := j.Policy(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cleanup settings: %w", err)
	}

	if !policy.Enabled {
		log.Println("Favorites cleanup is disabled, skipping")
		return nil
	}

	cutoff := j.now().Add(-policy.Retention())
	deleted, err := j.favoriteRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old favorites: %w", err)
	}

	log.Printf("Favorites cleanup removed %d entries older than %s", deleted, cutoff.Format(time.RFC3339))
	return nil
}
