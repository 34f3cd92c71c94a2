package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/backend/internal/domain"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParsePeriodAnchors(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		anchor string
		want   string
	}{
		{"daily date", "daily", "2024-01-15", "2024-01-15"},
		{"empty anchor is today", "daily", "", "2026-10-15"},
		{"weekly date", "weekly", "2024-01-17", "2024-01-17"},
		{"weekly bare year is this week", "weekly", "2024", "2026-10-15"},
		{"iso week, jan 1 on monday", "weekly", "2024-W03", "2024-01-15"},
		{"iso week, jan 1 on sunday", "weekly", "2023-W01", "2023-01-01"},
		{"iso week, jan 1 on wednesday", "weekly", "2025-W01", "2024-12-30"},
		{"monthly year-month", "monthly", "2024-02", "2024-02-01"},
		{"yearly bare year", "yearly", "2023", "2023-01-01"},
		{"kind is case insensitive", "YEARLY", "2023-06-01", "2023-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePeriod(tt.kind, tt.anchor, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Anchor.Format(dateLayout))
		})
	}
}

func TestParsePeriodRejectsBadRequests(t *testing.T) {
	tests := []struct {
		kind   string
		anchor string
	}{
		{"hourly", "2024-01-15"},
		{"daily", "2024"},
		{"daily", "2024-W03"},
		{"daily", "15/01/2024"},
		{"weekly", "2024-W00"},
		{"weekly", "2024-W60"},
		{"monthly", "2024-13"},
		{"yearly", "24"},
	}
	for _, tt := range tests {
		_, err := ParsePeriod(tt.kind, tt.anchor, fixedNow)
		assert.True(t, errors.Is(err, ErrInvalidPeriod), "%s/%s: got %v", tt.kind, tt.anchor, err)
	}
}

func TestWeeklyBoundaries(t *testing.T) {
	p, err := ParsePeriod("weekly", "2024-01-17", fixedNow)
	require.NoError(t, err)

	start, end := p.Bounds()
	assert.Equal(t, "2024-01-14", start.Format(dateLayout))
	assert.Equal(t, "2024-01-20", end.Format(dateLayout))

	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(start.AddDate(0, 0, 6)))
	assert.False(t, p.Contains(start.AddDate(0, 0, 7)))
	assert.False(t, p.Contains(start.AddDate(0, 0, -1)))
}

func TestMonthlyAndYearlyBoundaries(t *testing.T) {
	yearly := Period{Kind: Yearly, Anchor: day("2025-03-10")}
	assert.False(t, yearly.Contains(day("2024-12-31")))
	assert.True(t, yearly.Contains(day("2025-01-01")))

	monthly := Period{Kind: Monthly, Anchor: day("2024-02-10")}
	assert.True(t, monthly.Contains(day("2024-02-29")))
	assert.False(t, monthly.Contains(day("2024-03-01")))
	assert.False(t, monthly.Contains(day("2023-02-10")))
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		kind   Kind
		anchor string
		want   string
	}{
		{Daily, "2024-03-01", "2024-02-29"},
		{Weekly, "2024-01-03", "2023-12-27"},
		{Monthly, "2024-03-31", "2024-02-01"},
		{Monthly, "2024-01-15", "2023-12-01"},
		{Yearly, "2024-02-29", "2023-01-01"},
	}
	for _, tt := range tests {
		p := Period{Kind: tt.kind, Anchor: day(tt.anchor)}
		assert.Equal(t, tt.want, p.Previous().Anchor.Format(dateLayout), "%s %s", tt.kind, tt.anchor)
	}
}

func TestFilterUsesDateThenCreatedAt(t *testing.T) {
	p := Period{Kind: Daily, Anchor: day("2024-01-15")}
	records := []domain.Expense{
		{ID: "by-date", Date: "2024-01-15"},
		{ID: "by-created", CreatedAt: "2024-01-15T22:10:00Z"},
		{ID: "date-wins", Date: "2024-01-14", CreatedAt: "2024-01-15T08:00:00Z"},
		{ID: "garbage", Date: "yesterday"},
		{ID: "undated"},
	}

	got := Filter(records, p)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"by-date", "by-created"}, ids)
}

func TestFilterIsIdempotentAndPartitions(t *testing.T) {
	p := Period{Kind: Weekly, Anchor: day("2024-01-17")}
	records := []domain.DamagedItem{
		{ID: "a", Date: "2024-01-13"},
		{ID: "b", Date: "2024-01-14"},
		{ID: "c", Date: "2024-01-20"},
		{ID: "d", Date: "2024-01-21"},
		{ID: "e", Date: "not-a-date"},
	}

	once := Filter(records, p)
	twice := Filter(once, p)
	assert.Equal(t, once, twice)

	included := map[string]bool{}
	for _, r := range once {
		included[r.ID] = true
	}
	for _, r := range records {
		d, ok := EffectiveDate(r)
		inBucket := ok && p.Contains(d)
		assert.Equal(t, inBucket, included[r.ID], r.ID)
	}
	assert.Len(t, once, 2)
}
