// Package nutrition keeps the health profile and the per-day macro logs,
// and derives BMI and the weekly calorie series from them.
package nutrition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fridjy/internal/database"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/monitoring"
)

var ErrInvalidEntry = errors.New("nutrition: invalid entry")

// Tracker owns the profile singleton and the daily log collection. Logs are
// unique by date and kept sorted ascending.
type Tracker struct {
	mu      sync.RWMutex
	profile models.HealthProfile
	logs    []models.DailyLog
	store   database.Store
	log     *logger.Logger
	monitor *monitoring.Monitor
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithMonitor(m *monitoring.Monitor) Option {
	return func(t *Tracker) { t.monitor = m }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker loads the profile and logs once. A missing or unreadable
// profile falls back to models.DefaultProfile, unreadable logs to none.
func NewTracker(ctx context.Context, store database.Store, log *logger.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		log:     log.With("component", "nutrition"),
		now:     time.Now,
		profile: models.DefaultProfile(),
	}
	for _, o := range opts {
		o(t)
	}

	var profile models.HealthProfile
	found, err := database.LoadJSON(ctx, store, database.KeyHealthProfile, &profile)
	if err != nil {
		t.log.Warn("stored profile unreadable, using default", "key", database.KeyHealthProfile, "error", err)
	} else if found {
		t.profile = profile
	}

	var logs []models.DailyLog
	if _, err := database.LoadJSON(ctx, store, database.KeyHealthLogs, &logs); err != nil {
		t.log.Warn("stored logs unreadable, starting empty", "key", database.KeyHealthLogs, "error", err)
		logs = nil
	}
	t.logs = logs
	return t
}

// Profile returns the current profile.
func (t *Tracker) Profile() models.HealthProfile {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.profile
}

// SetProfile replaces the profile wholesale.
func (t *Tracker) SetProfile(ctx context.Context, p models.HealthProfile) error {
	if err := models.Validate(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile = p
	return t.persistLocked(ctx, database.KeyHealthProfile, t.profile)
}

// Logs returns a copy of the daily logs, ascending by date.
func (t *Tracker) Logs() []models.DailyLog {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]models.DailyLog(nil), t.logs...)
}

// AddLog merges entry into the log for its date, adding every macro to the
// existing totals, or appends it when the date is new. The collection is
// re-sorted by date afterwards.
func (t *Tracker) AddLog(ctx context.Context, entry models.DailyLog) error {
	if err := models.Validate(entry); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	merged := false
	for i := range t.logs {
		if t.logs[i].Date == entry.Date {
			t.logs[i].Calories += entry.Calories
			t.logs[i].Protein += entry.Protein
			t.logs[i].Carbs += entry.Carbs
			t.logs[i].Fats += entry.Fats
			merged = true
			break
		}
	}
	if !merged {
		t.logs = append(t.logs, entry)
	}
	sort.SliceStable(t.logs, func(i, j int) bool { return t.logs[i].Date < t.logs[j].Date })

	return t.persistLocked(ctx, database.KeyHealthLogs, t.logs)
}

// EntryFromRecipe turns a recipe's per-serving macros into a log entry for
// the UTC date of now.
func EntryFromRecipe(r models.Recipe, now time.Time) models.DailyLog {
	return models.DailyLog{
		Date:     models.FormatDate(now),
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fats:     r.Fats,
	}
}

// LogRecipe adds a cooked recipe to today's totals.
func (t *Tracker) LogRecipe(ctx context.Context, r models.Recipe) (models.DailyLog, error) {
	entry := EntryFromRecipe(r, t.now())
	if err := t.AddLog(ctx, entry); err != nil {
		return models.DailyLog{}, err
	}
	return t.Today(), nil
}

// Today returns the totals for the current UTC date, zero if nothing was
// logged yet.
func (t *Tracker) Today() models.DailyLog {
	date := models.FormatDate(t.now())
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, l := range t.logs {
		if l.Date == date {
			return l
		}
	}
	return models.DailyLog{Date: date}
}

// Weekly returns the trailing seven-day series against the profile goal.
func (t *Tracker) Weekly() []DayPoint {
	return WeeklySeries(t.now(), t.Logs(), t.Profile().CalorieGoal)
}

// Summary is the dashboard view of the tracker.
type Summary struct {
	Profile models.HealthProfile `json:"profile"`
	BMI     string               `json:"bmi"`
	BMIBand string               `json:"bmiBand"`
	Today   models.DailyLog      `json:"today"`
	Week    []DayPoint           `json:"week"`
}

// Summary collects the profile, its BMI, today's totals and the week.
func (t *Tracker) Summary() Summary {
	p := t.Profile()
	s := Summary{Profile: p, Today: t.Today(), Week: t.Weekly()}
	if bmi, err := BMI(p.Height, p.Weight); err == nil {
		s.BMI = FormatBMI(bmi)
		s.BMIBand = BMIBand(bmi)
	}
	return s
}

func (t *Tracker) persistLocked(ctx context.Context, key string, v any) error {
	err := database.SaveJSON(ctx, t.store, key, v)
	t.monitor.RecordStoreWrite(key, err)
	if err != nil {
		t.log.Error("failed to persist collection", "key", key, "error", err)
		return fmt.Errorf("nutrition: persist %s: %w", key, err)
	}
	return nil
}
