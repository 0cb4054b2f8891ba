package nutrition_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridjy/internal/database"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/nutrition"
)

var fixedNow = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func newTracker(store database.Store) *nutrition.Tracker {
	return nutrition.NewTracker(context.Background(), store, logger.Nop(),
		nutrition.WithClock(func() time.Time { return fixedNow }))
}

func TestBMI(t *testing.T) {
	bmi, err := nutrition.BMI(170, 70)
	require.NoError(t, err)
	assert.Equal(t, "24.2", nutrition.FormatBMI(bmi))
	assert.Equal(t, nutrition.BandNormal, nutrition.BMIBand(bmi))

	_, err = nutrition.BMI(0, 70)
	assert.ErrorIs(t, err, nutrition.ErrInvalidMeasurement)
}

func TestBMIBandBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4, nutrition.BandLow},
		{18.5, nutrition.BandNormal},
		{24.9, nutrition.BandNormal},
		{25.0, nutrition.BandHigh},
		{31.2, nutrition.BandHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nutrition.BMIBand(tt.bmi), "bmi %.1f", tt.bmi)
	}

	// 18.5 kg at 1 m sits exactly on the boundary
	bmi, err := nutrition.BMI(100, 18.5)
	require.NoError(t, err)
	assert.Equal(t, nutrition.BandNormal, nutrition.BMIBand(bmi))
}

func TestTrackerDefaultProfile(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	assert.Equal(t, models.DefaultProfile(), tr.Profile())
	assert.Empty(t, tr.Logs())
}

func TestTrackerSetProfilePersists(t *testing.T) {
	store := database.NewMemoryStore()
	tr := newTracker(store)

	p := models.DefaultProfile()
	p.Name = "Sam"
	p.CalorieGoal = 2400
	require.NoError(t, tr.SetProfile(context.Background(), p))

	assert.Equal(t, p, newTracker(store).Profile())
}

func TestTrackerSetProfileRejectsInvalid(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	p := models.DefaultProfile()
	p.Gender = "robot"

	err := tr.SetProfile(context.Background(), p)
	assert.ErrorIs(t, err, nutrition.ErrInvalidEntry)
	assert.Equal(t, models.DefaultProfile(), tr.Profile())
}

func TestTrackerAddLogMergesByDate(t *testing.T) {
	store := database.NewMemoryStore()
	tr := newTracker(store)
	ctx := context.Background()

	require.NoError(t, tr.AddLog(ctx, models.DailyLog{Date: "2024-01-05", Calories: 500, Protein: 30}))
	require.NoError(t, tr.AddLog(ctx, models.DailyLog{Date: "2024-01-05", Calories: 300, Protein: 10}))

	logs := tr.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, 800.0, logs[0].Calories)
	assert.Equal(t, 40.0, logs[0].Protein)
}

func TestTrackerAddLogKeepsDatesSorted(t *testing.T) {
	store := database.NewMemoryStore()
	tr := newTracker(store)
	ctx := context.Background()

	for _, d := range []string{"2024-01-07", "2024-01-05", "2024-01-06"} {
		require.NoError(t, tr.AddLog(ctx, models.DailyLog{Date: d, Calories: 100}))
	}

	reloaded := newTracker(store).Logs()
	require.Len(t, reloaded, 3)
	assert.Equal(t, "2024-01-05", reloaded[0].Date)
	assert.Equal(t, "2024-01-06", reloaded[1].Date)
	assert.Equal(t, "2024-01-07", reloaded[2].Date)
}

func TestTrackerAddLogRejectsNegative(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	err := tr.AddLog(context.Background(), models.DailyLog{Date: "2024-01-05", Calories: -1})
	assert.ErrorIs(t, err, nutrition.ErrInvalidEntry)
}

func TestTrackerCorruptCollections(t *testing.T) {
	store := database.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, database.KeyHealthProfile, "not json"))
	require.NoError(t, store.Save(ctx, database.KeyHealthLogs, "[{"))

	tr := newTracker(store)
	assert.Equal(t, models.DefaultProfile(), tr.Profile())
	assert.Empty(t, tr.Logs())
}

func TestTrackerLogRecipe(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	r := models.Recipe{Title: "Omelette", Calories: 350, Protein: 20, Carbs: 4, Fats: 25}

	today, err := tr.LogRecipe(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", today.Date)
	assert.Equal(t, 350.0, today.Calories)

	_, err = tr.LogRecipe(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 700.0, tr.Today().Calories)
	assert.Equal(t, 50.0, tr.Today().Fats)
}

func TestTrackerTodayZeroWhenEmpty(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	assert.Equal(t, models.DailyLog{Date: "2024-05-10"}, tr.Today())
}

func TestClassifyDay(t *testing.T) {
	assert.Equal(t, nutrition.DayNoData, nutrition.ClassifyDay(0, 2000))
	assert.Equal(t, nutrition.DayOver, nutrition.ClassifyDay(2001, 2000))
	assert.Equal(t, nutrition.DayMet, nutrition.ClassifyDay(2000, 2000))
	assert.Equal(t, nutrition.DayMet, nutrition.ClassifyDay(1600, 2000))
	assert.Equal(t, nutrition.DayUnder, nutrition.ClassifyDay(1599, 2000))
}

func TestWeeklySeries(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2024-05-01", Calories: 9000},
		{Date: "2024-05-04", Calories: 2500},
		{Date: "2024-05-08", Calories: 1000},
		{Date: "2024-05-10", Calories: 1800},
	}

	week := nutrition.WeeklySeries(fixedNow, logs, 2000)
	require.Len(t, week, nutrition.WeekDays)
	assert.Equal(t, "2024-05-04", week[0].Date)
	assert.Equal(t, "2024-05-10", week[6].Date)

	assert.Equal(t, nutrition.DayOver, week[0].Status)
	assert.Equal(t, nutrition.DayNoData, week[1].Status)
	assert.Equal(t, 0.0, week[1].Calories)
	assert.Equal(t, nutrition.DayUnder, week[4].Status)
	assert.Equal(t, nutrition.DayMet, week[6].Status)
}

func TestTrackerSummary(t *testing.T) {
	tr := newTracker(database.NewMemoryStore())
	require.NoError(t, tr.AddLog(context.Background(), models.DailyLog{Date: "2024-05-10", Calories: 2100}))

	s := tr.Summary()
	assert.Equal(t, "24.2", s.BMI)
	assert.Equal(t, nutrition.BandNormal, s.BMIBand)
	assert.Equal(t, 2100.0, s.Today.Calories)
	require.Len(t, s.Week, 7)
	assert.Equal(t, nutrition.DayOver, s.Week[6].Status)
}
