package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// Report periods accepted by the period-comparison endpoint.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
	PeriodYear  = "ano"
)

// AttendantUnknown is the bucket for calls logged without an attendant.
const AttendantUnknown = "Não informado"

// ReportFilter carries the optional constraints shared by every report.
// Start and End are inclusive civil dates in the report time zone; a nil
// bound means unbounded. Categories empty means no category filtering.
type ReportFilter struct {
	Start      *time.Time
	End        *time.Time
	Categories map[string]struct{}
}

// LocalizedSample is one call converted into the report time zone.
type LocalizedSample struct {
	// Day is the civil date (midnight, UTC location, date fields only).
	Day       time.Time
	Hour      int
	Category  string
	Attendant string
}

// DateOf normalizes a time to its bare civil date for comparisons.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterLocalize converts each sample's timestamp into loc and applies the
// filter. Samples with a zero timestamp are dropped. Timestamps are
// treated as UTC instants; the civil date used for both bucketing and
// start/end comparison is the date observed in loc, so a call stored at
// 02:30 UTC can land on the previous civil day.
func FilterLocalize(samples []model.CallSample, filter ReportFilter, loc *time.Location) []LocalizedSample {
	out := make([]LocalizedSample, 0, len(samples))
	for _, s := range samples {
		if s.CreatedAt.IsZero() {
			continue
		}
		local := s.CreatedAt.UTC().In(loc)
		day := DateOf(local)

		if filter.Start != nil && day.Before(DateOf(*filter.Start)) {
			continue
		}
		if filter.End != nil && day.After(DateOf(*filter.End)) {
			continue
		}
		if len(filter.Categories) > 0 {
			if _, ok := filter.Categories[s.Category]; !ok {
				continue
			}
		}

		out = append(out, LocalizedSample{
			Day:       day,
			Hour:      local.Hour(),
			Category:  s.Category,
			Attendant: s.Attendant,
		})
	}
	return out
}

// CountByCategory counts per category, emitting counts in the fixed
// caller-supplied order so zero-count categories stay visible.
func CountByCategory(filtered []LocalizedSample, order []string) (labels []string, counts []int, total int) {
	byCategory := make(map[string]int)
	for _, s := range filtered {
		byCategory[s.Category]++
	}

	labels = make([]string, len(order))
	counts = make([]int, len(order))
	for i, label := range order {
		labels[i] = label
		counts[i] = byCategory[label]
		total += byCategory[label]
	}
	return labels, counts, total
}

// CountByDay groups by civil date. Only dates with at least one call
// appear; missing days are not zero-filled.
func CountByDay(filtered []LocalizedSample) (labels []string, counts []int) {
	byDay := make(map[string]int)
	for _, s := range filtered {
		byDay[s.Day.Format("2006-01-02")]++
	}

	labels = make([]string, 0, len(byDay))
	for day := range byDay {
		labels = append(labels, day)
	}
	sort.Strings(labels)

	counts = make([]int, len(labels))
	for i, day := range labels {
		counts[i] = byDay[day]
	}
	return labels, counts
}

// CountByPeriod groups by day, ISO week, month or year. Unknown period
// values fall back to daily grouping. Labels sort ascending as strings.
func CountByPeriod(filtered []LocalizedSample, period string) (labels []string, counts []int, total int) {
	byPeriod := make(map[string]int)
	for _, s := range filtered {
		var key string
		switch period {
		case PeriodWeek:
			year, week := s.Day.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		case PeriodMonth:
			key = s.Day.Format("2006-01")
		case PeriodYear:
			key = s.Day.Format("2006")
		default:
			key = s.Day.Format("2006-01-02")
		}
		byPeriod[key]++
	}

	labels = make([]string, 0, len(byPeriod))
	for key := range byPeriod {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	counts = make([]int, len(labels))
	for i, key := range labels {
		counts[i] = byPeriod[key]
		total += byPeriod[key]
	}
	return labels, counts, total
}

// HourLabels returns the fixed 24-slot "HH:00" label set.
func HourLabels() []string {
	labels := make([]string, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%02d:00", h)
	}
	return labels
}

// CountByHourOfDay buckets calls by local hour across the fixed 24 slots.
// The output always has exactly 24 entries; whatever goes wrong inside,
// callers get the well-formed all-zero structure instead of an error so
// chart clients never see a malformed response.
func CountByHourOfDay(samples []model.CallSample, filter ReportFilter, loc *time.Location) (labels []string, counts []int, total int) {
	labels = HourLabels()
	counts = make([]int, 24)

	defer func() {
		if r := recover(); r != nil {
			counts = make([]int, 24)
			total = 0
		}
	}()

	for _, s := range FilterLocalize(samples, filter, loc) {
		if s.Hour < 0 || s.Hour > 23 {
			continue
		}
		counts[s.Hour]++
		total++
	}
	return labels, counts, total
}

// CountByAttendant groups by attendant display name, ordered by count
// descending. The sort is stable so ties keep the first-seen order for a
// fixed input ordering.
func CountByAttendant(filtered []LocalizedSample) (labels []string, counts []int, total int) {
	byAttendant := make(map[string]int)
	order := make([]string, 0)
	for _, s := range filtered {
		name := s.Attendant
		if name == "" {
			name = AttendantUnknown
		}
		if _, seen := byAttendant[name]; !seen {
			order = append(order, name)
		}
		byAttendant[name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byAttendant[order[i]] > byAttendant[order[j]]
	})

	labels = make([]string, len(order))
	counts = make([]int, len(order))
	for i, name := range order {
		labels[i] = name
		counts[i] = byAttendant[name]
		total += byAttendant[name]
	}
	return labels, counts, total
}

// FilterCalls applies the report filter to full call records, for exports.
func FilterCalls(calls []model.Call, filter ReportFilter, loc *time.Location) []model.Call {
	out := make([]model.Call, 0, len(calls))
	for _, c := range calls {
		if c.CreatedAt.IsZero() {
			continue
		}
		day := DateOf(c.CreatedAt.UTC().In(loc))
		if filter.Start != nil && day.Before(DateOf(*filter.Start)) {
			continue
		}
		if filter.End != nil && day.After(DateOf(*filter.End)) {
			continue
		}
		if len(filter.Categories) > 0 {
			if _, ok := filter.Categories[c.Category]; !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
