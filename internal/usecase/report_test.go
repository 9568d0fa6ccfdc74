package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/usecase"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func sampleAt(t time.Time, category, attendant string) model.CallSample {
	return model.CallSample{CreatedAt: t, Category: category, Attendant: attendant}
}

func TestFilterLocalize(t *testing.T) {
	loc := saoPaulo(t)

	t.Run("timestamp near midnight lands on the previous civil day", func(t *testing.T) {
		// 02:30 UTC is 23:30 of the previous day at UTC-3.
		utc := time.Date(2025, 3, 1, 2, 30, 0, 0, time.UTC)
		out := usecase.FilterLocalize([]model.CallSample{sampleAt(utc, model.CategoryOptions[0], "Ana")}, usecase.ReportFilter{}, loc)

		require.Len(t, out, 1)
		assert.Equal(t, "2025-02-28", out[0].Day.Format("2006-01-02"))
		assert.Equal(t, 23, out[0].Hour)
	})

	t.Run("zero timestamps are dropped", func(t *testing.T) {
		out := usecase.FilterLocalize([]model.CallSample{
			sampleAt(time.Time{}, model.CategoryOptions[0], "Ana"),
			sampleAt(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], "Ana"),
		}, usecase.ReportFilter{}, loc)

		assert.Len(t, out, 1)
	})

	t.Run("start and end bounds are inclusive civil dates", func(t *testing.T) {
		start := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
		samples := []model.CallSample{
			sampleAt(time.Date(2025, 5, 9, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
			sampleAt(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
			sampleAt(time.Date(2025, 5, 11, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
			sampleAt(time.Date(2025, 5, 12, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		}

		out := usecase.FilterLocalize(samples, usecase.ReportFilter{Start: &start, End: &end}, loc)

		require.Len(t, out, 2)
		assert.Equal(t, "2025-05-10", out[0].Day.Format("2006-01-02"))
		assert.Equal(t, "2025-05-11", out[1].Day.Format("2006-01-02"))
	})

	t.Run("start after end matches nothing", func(t *testing.T) {
		start := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
		samples := []model.CallSample{
			sampleAt(time.Date(2025, 5, 15, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		}

		out := usecase.FilterLocalize(samples, usecase.ReportFilter{Start: &start, End: &end}, loc)
		assert.Empty(t, out)
	})

	t.Run("category set filters", func(t *testing.T) {
		samples := []model.CallSample{
			sampleAt(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
			sampleAt(time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC), model.CategoryOptions[2], ""),
		}
		filter := usecase.ReportFilter{Categories: map[string]struct{}{model.CategoryOptions[2]: {}}}

		out := usecase.FilterLocalize(samples, filter, loc)

		require.Len(t, out, 1)
		assert.Equal(t, model.CategoryOptions[2], out[0].Category)
	})
}

func TestCountByCategory(t *testing.T) {
	loc := saoPaulo(t)

	samples := []model.CallSample{
		sampleAt(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), model.CategoryOptions[2], ""),
		sampleAt(time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		sampleAt(time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC), model.CategoryOptions[2], ""),
	}
	filtered := usecase.FilterLocalize(samples, usecase.ReportFilter{}, loc)

	labels, counts, total := usecase.CountByCategory(filtered, model.CategoryOptions)

	assert.Equal(t, model.CategoryOptions, labels)
	assert.Equal(t, []int{1, 0, 2, 0, 0, 0, 0}, counts)
	assert.Equal(t, 3, total)
}

func TestCountByCategory_Empty(t *testing.T) {
	labels, counts, total := usecase.CountByCategory(nil, model.CategoryOptions)

	assert.Len(t, labels, len(model.CategoryOptions))
	assert.Equal(t, make([]int, len(model.CategoryOptions)), counts)
	assert.Zero(t, total)
}

func TestCountByDay(t *testing.T) {
	loc := saoPaulo(t)

	samples := []model.CallSample{
		sampleAt(time.Date(2025, 5, 12, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		sampleAt(time.Date(2025, 5, 10, 16, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		sampleAt(time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
	}
	filtered := usecase.FilterLocalize(samples, usecase.ReportFilter{}, loc)

	labels, counts := usecase.CountByDay(filtered)

	// Sorted ascending, days without calls omitted.
	assert.Equal(t, []string{"2025-05-10", "2025-05-12"}, labels)
	assert.Equal(t, []int{2, 1}, counts)
}

func TestCountByPeriod(t *testing.T) {
	loc := saoPaulo(t)

	samples := []model.CallSample{
		sampleAt(time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),  // ISO week 2
		sampleAt(time.Date(2025, 1, 8, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),  // ISO week 2
		sampleAt(time.Date(2025, 2, 14, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""), // ISO week 7
	}
	filtered := usecase.FilterLocalize(samples, usecase.ReportFilter{}, loc)

	t.Run("week", func(t *testing.T) {
		labels, counts, total := usecase.CountByPeriod(filtered, usecase.PeriodWeek)
		assert.Equal(t, []string{"2025-W02", "2025-W07"}, labels)
		assert.Equal(t, []int{2, 1}, counts)
		assert.Equal(t, 3, total)
	})

	t.Run("month", func(t *testing.T) {
		labels, counts, _ := usecase.CountByPeriod(filtered, usecase.PeriodMonth)
		assert.Equal(t, []string{"2025-01", "2025-02"}, labels)
		assert.Equal(t, []int{2, 1}, counts)
	})

	t.Run("year", func(t *testing.T) {
		labels, counts, _ := usecase.CountByPeriod(filtered, usecase.PeriodYear)
		assert.Equal(t, []string{"2025"}, labels)
		assert.Equal(t, []int{3}, counts)
	})

	t.Run("unknown period falls back to daily", func(t *testing.T) {
		labels, _, _ := usecase.CountByPeriod(filtered, "quinzena")
		assert.Equal(t, []string{"2025-01-06", "2025-01-08", "2025-02-14"}, labels)
	})
}

func TestCountByHourOfDay(t *testing.T) {
	loc := saoPaulo(t)

	t.Run("always emits 24 slots", func(t *testing.T) {
		samples := []model.CallSample{
			// 17:00 UTC is 14:00 at UTC-3.
			sampleAt(time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
			sampleAt(time.Date(2025, 5, 10, 17, 30, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		}

		labels, counts, total := usecase.CountByHourOfDay(samples, usecase.ReportFilter{}, loc)

		require.Len(t, labels, 24)
		require.Len(t, counts, 24)
		assert.Equal(t, "00:00", labels[0])
		assert.Equal(t, "23:00", labels[23])
		assert.Equal(t, 2, counts[14])
		assert.Equal(t, 2, total)
	})

	t.Run("empty input still yields the full structure", func(t *testing.T) {
		labels, counts, total := usecase.CountByHourOfDay(nil, usecase.ReportFilter{}, loc)

		assert.Len(t, labels, 24)
		assert.Equal(t, make([]int, 24), counts)
		assert.Zero(t, total)
	})

	t.Run("nil location yields zeroed slots instead of panicking", func(t *testing.T) {
		samples := []model.CallSample{
			sampleAt(time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
		}

		labels, counts, total := usecase.CountByHourOfDay(samples, usecase.ReportFilter{}, nil)

		assert.Len(t, labels, 24)
		assert.Equal(t, make([]int, 24), counts)
		assert.Zero(t, total)
	})
}

func TestCountByAttendant(t *testing.T) {
	loc := saoPaulo(t)

	samples := []model.CallSample{
		sampleAt(time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC), model.CategoryOptions[0], "Bruno"),
		sampleAt(time.Date(2025, 5, 10, 13, 0, 0, 0, time.UTC), model.CategoryOptions[0], "Ana"),
		sampleAt(time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), model.CategoryOptions[0], "Ana"),
		sampleAt(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), model.CategoryOptions[0], ""),
	}
	filtered := usecase.FilterLocalize(samples, usecase.ReportFilter{}, loc)

	labels, counts, total := usecase.CountByAttendant(filtered)

	// Ordered by count descending; ties keep first-seen order.
	assert.Equal(t, []string{"Ana", "Bruno", usecase.AttendantUnknown}, labels)
	assert.Equal(t, []int{2, 1, 1}, counts)
	assert.Equal(t, 4, total)
}
